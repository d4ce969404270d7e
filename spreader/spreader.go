package spreader

import "github.com/dali-eda/dali/circuit"

// Spread redistributes movable Blocks so that no density bin exceeds the
// configured target filling rate (spec §4.4), repeating the bin-state →
// cluster → bipartition cycle until no cluster is overfilled or the pass
// budget is exhausted. It mutates Block.X/Block.Y in place and returns the
// Grid from the final pass (useful for tests asserting property P2).
func Spread(c *circuit.Circuit, opts ...Option) *Grid {
	cfg := newConfig(opts...)
	rowHeight := 1.0
	if len(c.Rows) > 0 {
		rowHeight = c.Rows[0].Height
	}

	var g *Grid
	for pass := 0; pass < cfg.maxPasses; pass++ {
		g = NewGrid(c, cfg.binRowMultiple)
		g.ComputeWhiteSpace(c.Design)
		g.AssignCells(c.Design)

		clusters := FindClusters(g, cfg.targetDensity)
		if len(clusters) == 0 {
			break
		}
		for _, cl := range clusters {
			seed := ExpandToTarget(g, cl, cfg.targetDensity)
			bipartition(c.Design, g, seed, cfg, rowHeight)
		}
	}
	return g
}

// bipartition drives the pop/split queue for one seed Box (spec §4.4
// "Recursive bipartition").
func bipartition(d *circuit.Design, g *Grid, seed Box, cfg *config, rowHeight float64) {
	queue := []Box{seed}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if len(b.Cells) == 0 {
			continue
		}

		if b.BinX0 == b.BinX1 && b.BinY0 == b.BinY1 {
			if !overlapsFixed(d, b) {
				placeLeaf(d, b, rowHeight)
			} else {
				lo, hi := splitObstacle(d, b)
				queue = append(queue, lo, hi)
			}
			continue
		}

		lo, hi, _ := splitBins(g, b)
		wsLo, wsHi := lo.whiteSpace(g), hi.whiteSpace(g)
		total := wsLo + wsHi
		if total <= 0 {
			queue = append(queue, lo, hi)
			continue
		}
		if wsLo/total <= cfg.dominanceFraction {
			hi.Cells, hi.CellArea = b.Cells, b.CellArea
			lo.Cells, lo.CellArea = nil, 0
		} else if wsHi/total <= cfg.dominanceFraction {
			lo.Cells, lo.CellArea = b.Cells, b.CellArea
			hi.Cells, hi.CellArea = nil, 0
		} else {
			axis := byte('x')
			if b.BinY1-b.BinY0 > b.BinX1-b.BinX0 {
				axis = 'y'
			}
			r := wsLo / total
			loCells, hiCells := bisectCellPartition(d, b.Cells, axis, r, cfg.bisectionIterations)
			lo.Cells, hi.Cells = loCells, hiCells
			lo.CellArea = sumArea(d, loCells)
			hi.CellArea = sumArea(d, hiCells)
		}
		queue = append(queue, lo, hi)
	}
}

func sumArea(d *circuit.Design, cells []int) float64 {
	var total float64
	for _, ci := range cells {
		r := d.Blocks()[ci].Rect()
		total += r.Width() * r.Height()
	}
	return total
}
