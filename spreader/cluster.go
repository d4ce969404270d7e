package spreader

import "sort"

// BinCoord is a (x,y) bin index pair.
type BinCoord struct{ X, Y int }

// Cluster is a 4-connected group of overfilled bins (spec §4.4 "Cluster
// formation"), adapted from the teacher's gridgraph.ConnectedComponents
// BFS over land/water cells.
type Cluster struct {
	Bins      []BinCoord
	CellArea  float64
}

// FindClusters runs a BFS over overfilled bins using 4-connectivity,
// grouping them into Clusters sorted by total cell_area descending
// (spec §4.4).
func FindClusters(g *Grid, target float64) []Cluster {
	visited := make([][]bool, g.NY)
	for y := range visited {
		visited[y] = make([]bool, g.NX)
	}

	var clusters []Cluster
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for y0 := 0; y0 < g.NY; y0++ {
		for x0 := 0; x0 < g.NX; x0++ {
			if visited[y0][x0] || !g.Overfilled(x0, y0, target) {
				continue
			}
			queue := []BinCoord{{x0, y0}}
			visited[y0][x0] = true
			var cl Cluster
			for qi := 0; qi < len(queue); qi++ {
				cur := queue[qi]
				cl.Bins = append(cl.Bins, cur)
				cl.CellArea += g.Bins[cur.Y][cur.X].CellArea
				for _, d := range offsets {
					nx, ny := cur.X+d[0], cur.Y+d[1]
					if nx < 0 || nx >= g.NX || ny < 0 || ny >= g.NY {
						continue
					}
					if visited[ny][nx] || !g.Overfilled(nx, ny, target) {
						continue
					}
					visited[ny][nx] = true
					queue = append(queue, BinCoord{nx, ny})
				}
			}
			clusters = append(clusters, cl)
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].CellArea > clusters[j].CellArea
	})
	return clusters
}

// BoundingBinBox returns the axis-aligned bin-index bounding box of a
// cluster's bins.
func (cl Cluster) BoundingBinBox() (x0, y0, x1, y1 int) {
	x0, y0 = cl.Bins[0].X, cl.Bins[0].Y
	x1, y1 = x0, y0
	for _, b := range cl.Bins[1:] {
		if b.X < x0 {
			x0 = b.X
		}
		if b.X > x1 {
			x1 = b.X
		}
		if b.Y < y0 {
			y0 = b.Y
		}
		if b.Y > y1 {
			y1 = b.Y
		}
	}
	return x0, y0, x1, y1
}

// ExpandToTarget grows a cluster's bounding bin-box outward one ring at a
// time (clamped to grid bounds) until its aggregate filling rate is at or
// below target, returning the resulting box (spec §4.4 "Recursive
// bipartition": seed Box derivation).
func ExpandToTarget(g *Grid, cl Cluster, target float64) Box {
	x0, y0, x1, y1 := cl.BoundingBinBox()
	for {
		ws := g.WhiteSpaceRect(x0, y0, x1, y1)
		area := cellAreaInBinBox(g, x0, y0, x1, y1)
		if ws <= 0 || area/ws <= target {
			break
		}
		grown := false
		if x0 > 0 {
			x0--
			grown = true
		}
		if x1 < g.NX-1 {
			x1++
			grown = true
		}
		if y0 > 0 {
			y0--
			grown = true
		}
		if y1 < g.NY-1 {
			y1++
			grown = true
		}
		if !grown {
			break
		}
	}
	return newBoxFromBinRange(g, x0, y0, x1, y1)
}

func cellAreaInBinBox(g *Grid, x0, y0, x1, y1 int) float64 {
	var total float64
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			total += g.Bins[y][x].CellArea
		}
	}
	return total
}
