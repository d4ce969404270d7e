// Package spreader implements the recursive bin-based cell spreader
// (spec §4.4): grid-bin density analysis, overfilled-bin clustering (grown
// from the teacher's gridgraph 4-connected component search), and
// recursive bipartition with row-height-aligned leaf placement.
package spreader

import (
	"math"

	"github.com/dali-eda/dali/circuit"
)

// Bin is one cell of the uniform density grid.
type Bin struct {
	LLX, LLY, URX, URY float64

	WhiteSpace   float64 // area - sum(fixed/cover overlap)
	AllTerminal  bool    // white space has dropped to (near) zero
	CellArea     float64
	Cells        []int // indices into Design.Blocks()
	FixedOverlap bool   // any assigned cell overlaps a fixed block in this bin
}

func (b Bin) Width() float64  { return b.URX - b.LLX }
func (b Bin) Height() float64 { return b.URY - b.LLY }
func (b Bin) Area() float64   { return b.Width() * b.Height() }

// Grid is the uniform density grid over a circuit's PlacementRegion.
type Grid struct {
	NX, NY   int
	BinW     float64
	BinH     float64
	Region   circuit.PlacementRegion
	Bins     [][]Bin // row-major, [y][x]

	prefix [][]float64 // inclusive 2-D prefix sum of white space, (NY+1)x(NX+1)
}

// NewGrid builds an empty bin grid over c.Region: bin height is
// binRowMultiple row heights (falling back to 1 if c.Rows is empty), and
// bin width is chosen so the bin count in x matches the bin count in y
// (spec §4.4 "ceiling").
func NewGrid(c *circuit.Circuit, binRowMultiple int) *Grid {
	rowH := 1.0
	if len(c.Rows) > 0 {
		rowH = c.Rows[0].Height
	}
	binH := rowH * float64(binRowMultiple)
	if binH <= 0 {
		binH = 1
	}
	ny := int(math.Ceil(c.Region.Height() / binH))
	if ny < 1 {
		ny = 1
	}
	nx := ny
	binW := c.Region.Width() / float64(nx)
	if binW <= 0 {
		binW = c.Region.Width()
		if binW <= 0 {
			binW = 1
		}
	}

	g := &Grid{NX: nx, NY: ny, BinW: binW, BinH: binH, Region: c.Region}
	g.Bins = make([][]Bin, ny)
	for y := 0; y < ny; y++ {
		g.Bins[y] = make([]Bin, nx)
		for x := 0; x < nx; x++ {
			llx := c.Region.LLX + float64(x)*binW
			lly := c.Region.LLY + float64(y)*binH
			urx := llx + binW
			if x == nx-1 {
				urx = c.Region.URX
			}
			ury := lly + binH
			if y == ny-1 {
				ury = c.Region.URY
			}
			g.Bins[y][x] = Bin{LLX: llx, LLY: lly, URX: urx, URY: ury}
		}
	}
	return g
}

// clampBin clamps a continuous (x,y) to a valid bin index.
func (g *Grid) clampBin(x, y float64) (bx, by int) {
	bx = int((x - g.Region.LLX) / g.BinW)
	by = int((y - g.Region.LLY) / g.BinH)
	if bx < 0 {
		bx = 0
	}
	if bx >= g.NX {
		bx = g.NX - 1
	}
	if by < 0 {
		by = 0
	}
	if by >= g.NY {
		by = g.NY - 1
	}
	return bx, by
}

// ComputeWhiteSpace derives each bin's residual white space from overlap
// with FIXED/COVER blocks, flagging all_terminal bins whose white space
// has dropped to (near) zero.
func (g *Grid) ComputeWhiteSpace(d *circuit.Design) {
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			bin := &g.Bins[y][x]
			bin.WhiteSpace = bin.Area()
		}
	}
	for _, b := range d.Blocks() {
		if b.Status.Movable() {
			continue
		}
		r := b.Rect()
		bx0, by0 := g.clampBin(r.LLX, r.LLY)
		bx1, by1 := g.clampBin(r.URX-1e-9, r.URY-1e-9)
		for y := by0; y <= by1; y++ {
			for x := bx0; x <= bx1; x++ {
				bin := &g.Bins[y][x]
				binRect := circuit.Rect{LLX: bin.LLX, LLY: bin.LLY, URX: bin.URX, URY: bin.URY}
				overlap := rectOverlapArea(binRect, r)
				bin.WhiteSpace -= overlap
				if bin.WhiteSpace < 1e-9 {
					bin.WhiteSpace = 0
					bin.AllTerminal = true
				}
			}
		}
	}
	g.buildPrefixSum()
}

func rectOverlapArea(a, b circuit.Rect) float64 {
	llx := math.Max(a.LLX, b.LLX)
	lly := math.Max(a.LLY, b.LLY)
	urx := math.Min(a.URX, b.URX)
	ury := math.Min(a.URY, b.URY)
	if urx <= llx || ury <= lly {
		return 0
	}
	return (urx - llx) * (ury - lly)
}

// buildPrefixSum computes the inclusive 2-D prefix sum of white space for
// constant-time rectangular white-space queries.
func (g *Grid) buildPrefixSum() {
	g.prefix = make([][]float64, g.NY+1)
	for y := range g.prefix {
		g.prefix[y] = make([]float64, g.NX+1)
	}
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			g.prefix[y+1][x+1] = g.Bins[y][x].WhiteSpace +
				g.prefix[y][x+1] + g.prefix[y+1][x] - g.prefix[y][x]
		}
	}
}

// WhiteSpaceRect returns the total white space of bins [x0..x1]x[y0..y1]
// (inclusive, 0-based bin indices) via the prefix sum.
func (g *Grid) WhiteSpaceRect(x0, y0, x1, y1 int) float64 {
	if g.prefix == nil {
		g.buildPrefixSum()
	}
	return g.prefix[y1+1][x1+1] - g.prefix[y0][x1+1] - g.prefix[y1+1][x0] + g.prefix[y0][x0]
}

// AssignCells clears and rebuilds the per-bin cell_area/cell_list from
// every movable Block's current center (spec §4.4 "Bin state update").
func (g *Grid) AssignCells(d *circuit.Design) {
	for y := 0; y < g.NY; y++ {
		for x := 0; x < g.NX; x++ {
			g.Bins[y][x].CellArea = 0
			g.Bins[y][x].Cells = nil
			g.Bins[y][x].FixedOverlap = false
		}
	}
	for i, b := range d.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		r := b.Rect()
		cx, cy := r.Center()
		bx, by := g.clampBin(cx, cy)
		bin := &g.Bins[by][bx]
		bin.CellArea += r.Width() * r.Height()
		bin.Cells = append(bin.Cells, i)
	}
	for _, fb := range d.Blocks() {
		if fb.Status.Movable() {
			continue
		}
		fr := fb.Rect()
		bx0, by0 := g.clampBin(fr.LLX, fr.LLY)
		bx1, by1 := g.clampBin(fr.URX-1e-9, fr.URY-1e-9)
		for y := by0; y <= by1; y++ {
			for x := bx0; x <= bx1; x++ {
				bin := &g.Bins[y][x]
				for _, ci := range bin.Cells {
					if rectOverlapArea(d.Blocks()[ci].Rect(), fr) > 0 {
						bin.FixedOverlap = true
					}
				}
			}
		}
	}
}

// Overfilled reports whether bin (x,y) violates the density target (spec
// §4.4: all_terminal with a resident cell, over-target fill ratio, or a
// fixed-block overlap).
func (g *Grid) Overfilled(x, y int, target float64) bool {
	bin := g.Bins[y][x]
	if bin.AllTerminal && len(bin.Cells) > 0 {
		return true
	}
	if bin.WhiteSpace > 0 && bin.CellArea/bin.WhiteSpace > target {
		return true
	}
	return bin.FixedOverlap
}
