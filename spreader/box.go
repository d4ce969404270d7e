package spreader

import (
	"math"
	"sort"

	"github.com/dali-eda/dali/circuit"
)

// Box is one node of the recursive bipartition tree (spec §4.4). It
// carries both a bin-index rectangle, used for white-space balancing via
// the grid's prefix sum, and a continuous cell rectangle used for cell
// placement.
type Box struct {
	BinX0, BinY0, BinX1, BinY1 int
	LLX, LLY, URX, URY         float64
	Cells                      []int
	CellArea                   float64
}

func newBoxFromBinRange(g *Grid, x0, y0, x1, y1 int) Box {
	b := Box{BinX0: x0, BinY0: y0, BinX1: x1, BinY1: y1}
	b.LLX = g.Bins[y0][x0].LLX
	b.LLY = g.Bins[y0][x0].LLY
	b.URX = g.Bins[y1][x1].URX
	b.URY = g.Bins[y1][x1].URY
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			bin := g.Bins[y][x]
			b.Cells = append(b.Cells, bin.Cells...)
			b.CellArea += bin.CellArea
		}
	}
	return b
}

func (b Box) whiteSpace(g *Grid) float64 {
	return g.WhiteSpaceRect(b.BinX0, b.BinY0, b.BinX1, b.BinY1)
}

// splitBins picks the longer bin-axis and searches for the bin-index cut
// that splits total white space as close to 50/50 as possible (spec
// §4.4), returning the two bin-index sub-ranges and the axis searched
// ('x' or 'y').
func splitBins(g *Grid, b Box) (lo, hi Box, axis byte) {
	wBins := b.BinX1 - b.BinX0 + 1
	hBins := b.BinY1 - b.BinY0 + 1
	total := b.whiteSpace(g)

	bestDiff := math.Inf(1)
	var bestCut int
	if wBins >= hBins {
		axis = 'x'
		for cut := b.BinX0; cut < b.BinX1; cut++ {
			wsLo := g.WhiteSpaceRect(b.BinX0, b.BinY0, cut, b.BinY1)
			diff := math.Abs(wsLo - (total - wsLo))
			if diff < bestDiff {
				bestDiff, bestCut = diff, cut
			}
		}
		lo = newBoxFromBinRange(g, b.BinX0, b.BinY0, bestCut, b.BinY1)
		hi = newBoxFromBinRange(g, bestCut+1, b.BinY0, b.BinX1, b.BinY1)
	} else {
		axis = 'y'
		for cut := b.BinY0; cut < b.BinY1; cut++ {
			wsLo := g.WhiteSpaceRect(b.BinX0, b.BinY0, b.BinX1, cut)
			diff := math.Abs(wsLo - (total - wsLo))
			if diff < bestDiff {
				bestDiff, bestCut = diff, cut
			}
		}
		lo = newBoxFromBinRange(g, b.BinX0, b.BinY0, b.BinX1, bestCut)
		hi = newBoxFromBinRange(g, b.BinX0, bestCut+1, b.BinX1, b.BinY1)
	}
	return lo, hi, axis
}

// cellCenter returns a movable Block's center coordinate on the given
// axis.
func cellCenter(d *circuit.Design, blockIdx int, axis byte) float64 {
	r := d.Blocks()[blockIdx].Rect()
	cx, cy := r.Center()
	if axis == 'x' {
		return cx
	}
	return cy
}

// bisectCellPartition splits cells into low/high by bisecting a coordinate
// on the cut axis until accumulated cell area on the low side matches
// r*totalArea (spec §4.4 "Cell partition", 20 iterations default).
func bisectCellPartition(d *circuit.Design, cells []int, axis byte, r float64, iterations int) (lo, hi []int) {
	if len(cells) == 0 {
		return nil, nil
	}
	lowBound, highBound := math.Inf(1), math.Inf(-1)
	for _, ci := range cells {
		c := cellCenter(d, ci, axis)
		if c < lowBound {
			lowBound = c
		}
		if c > highBound {
			highBound = c
		}
	}
	var totalArea float64
	for _, ci := range cells {
		rr := d.Blocks()[ci].Rect()
		totalArea += rr.Width() * rr.Height()
	}
	target := r * totalArea

	line := (lowBound + highBound) / 2
	for i := 0; i < iterations; i++ {
		var areaLow float64
		for _, ci := range cells {
			if cellCenter(d, ci, axis) <= line {
				rr := d.Blocks()[ci].Rect()
				areaLow += rr.Width() * rr.Height()
			}
		}
		if areaLow < target {
			lowBound = line
		} else {
			highBound = line
		}
		line = (lowBound + highBound) / 2
	}

	for _, ci := range cells {
		if cellCenter(d, ci, axis) <= line {
			lo = append(lo, ci)
		} else {
			hi = append(hi, ci)
		}
	}
	return lo, hi
}

// splitObstacle handles a single-bin Box whose cells overlap a fixed
// block: split along whichever axis has more obstacle-boundary lines,
// cutting at the first such line (spec §4.4).
func splitObstacle(d *circuit.Design, b Box) (lo, hi Box) {
	var xLines, yLines []float64
	for _, fb := range d.Blocks() {
		if fb.Status.Movable() {
			continue
		}
		r := fb.Rect()
		if r.URX <= b.LLX || r.LLX >= b.URX || r.URY <= b.LLY || r.LLY >= b.URY {
			continue
		}
		if r.LLX > b.LLX && r.LLX < b.URX {
			xLines = append(xLines, r.LLX)
		}
		if r.URX > b.LLX && r.URX < b.URX {
			xLines = append(xLines, r.URX)
		}
		if r.LLY > b.LLY && r.LLY < b.URY {
			yLines = append(yLines, r.LLY)
		}
		if r.URY > b.LLY && r.URY < b.URY {
			yLines = append(yLines, r.URY)
		}
	}

	useX := len(xLines) >= len(yLines)
	if useX && len(xLines) > 0 {
		sort.Float64s(xLines)
		cut := xLines[0]
		lo = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: b.LLX, LLY: b.LLY, URX: cut, URY: b.URY}
		hi = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: cut, LLY: b.LLY, URX: b.URX, URY: b.URY}
	} else if len(yLines) > 0 {
		sort.Float64s(yLines)
		cut := yLines[0]
		lo = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: b.LLX, LLY: b.LLY, URX: b.URX, URY: cut}
		hi = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: b.LLX, LLY: cut, URX: b.URX, URY: b.URY}
	} else {
		// no discoverable obstacle boundary inside the box; fall back to a
		// plain midline split so the cycle still terminates.
		midx := (b.LLX + b.URX) / 2
		lo = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: b.LLX, LLY: b.LLY, URX: midx, URY: b.URY}
		hi = Box{BinX0: b.BinX0, BinY0: b.BinY0, BinX1: b.BinX1, BinY1: b.BinY1, LLX: midx, LLY: b.LLY, URX: b.URX, URY: b.URY}
	}

	for _, ci := range b.Cells {
		r := d.Blocks()[ci].Rect()
		cx, cy := r.Center()
		if useX && len(xLines) > 0 {
			if cx <= lo.URX {
				lo.Cells = append(lo.Cells, ci)
				lo.CellArea += r.Width() * r.Height()
			} else {
				hi.Cells = append(hi.Cells, ci)
				hi.CellArea += r.Width() * r.Height()
			}
		} else {
			if cy <= lo.URY {
				lo.Cells = append(lo.Cells, ci)
				lo.CellArea += r.Width() * r.Height()
			} else {
				hi.Cells = append(hi.Cells, ci)
				hi.CellArea += r.Width() * r.Height()
			}
		}
	}
	return lo, hi
}

// overlapsFixed reports whether any fixed block overlaps b's continuous
// rectangle.
func overlapsFixed(d *circuit.Design, b Box) bool {
	boxRect := circuit.Rect{LLX: b.LLX, LLY: b.LLY, URX: b.URX, URY: b.URY}
	for _, fb := range d.Blocks() {
		if fb.Status.Movable() {
			continue
		}
		if rectOverlapArea(fb.Rect(), boxRect) > 0 {
			return true
		}
	}
	return false
}

// placeLeaf recursively bisects b with row-height-aligned cut lines until
// each leaf holds at most one cell, then places each cell at its leaf's
// center (spec §4.4 "Leaf placement").
func placeLeaf(d *circuit.Design, b Box, rowHeight float64) {
	if len(b.Cells) == 0 {
		return
	}
	if len(b.Cells) == 1 {
		cx := (b.LLX + b.URX) / 2
		cy := (b.LLY + b.URY) / 2
		blk := d.Blocks()[b.Cells[0]]
		w := blk.Width()
		h := blk.Rect().Height()
		blk.X = cx - w/2
		blk.Y = snapToRow(cy-h/2, b.LLY, rowHeight)
		return
	}

	var axis byte = 'x'
	if b.URY-b.LLY > b.URX-b.LLX {
		axis = 'y'
	}

	sorted := append([]int(nil), b.Cells...)
	sort.Slice(sorted, func(i, j int) bool {
		return cellCenter(d, sorted[i], axis) < cellCenter(d, sorted[j], axis)
	})
	mid := len(sorted) / 2
	loCells, hiCells := sorted[:mid], sorted[mid:]

	lo, hi := b, b
	lo.Cells, hi.Cells = loCells, hiCells
	if axis == 'x' {
		cut := (b.LLX + b.URX) / 2
		lo.URX, hi.LLX = cut, cut
	} else {
		cut := snapToRow((b.LLY+b.URY)/2, b.LLY, rowHeight)
		if cut <= b.LLY || cut >= b.URY {
			cut = (b.LLY + b.URY) / 2
		}
		lo.URY, hi.LLY = cut, cut
	}
	placeLeaf(d, lo, rowHeight)
	placeLeaf(d, hi, rowHeight)
}

func snapToRow(y, rowOrigin, rowHeight float64) float64 {
	if rowHeight <= 0 {
		return y
	}
	steps := math.Round((y - rowOrigin) / rowHeight)
	return rowOrigin + steps*rowHeight
}
