// Package boundtracker computes per-net extrema and half-perimeter
// wirelength (HPWL) over a circuit.Design. It is pure: it never mutates
// Blocks, only the cached extrema indices inside each circuit.Net (mirrors
// the teacher's BFS/DFS "hooks read, never write the graph" discipline).
package boundtracker

import "github.com/dali-eda/dali/circuit"

// Mode selects which pin coordinates the tracker uses.
type Mode int

const (
	// PinToPin uses the oriented absolute pin coordinates.
	PinToPin Mode = iota
	// CenterToCenter uses block centers only, ignoring pin offsets. IoPins
	// still contribute their own (x,y) since they have no extent.
	CenterToCenter
)

// coord resolves the coordinate of pin i of net n under the requested mode.
func coord(n *circuit.Net, d *circuit.Design, mode Mode, i int) (float64, float64) {
	p := n.Pins[i]
	if mode == PinToPin || p.IsIoPin() {
		return p.AbsCoord(d)
	}
	b := d.Blocks()[p.BlockIdx]
	r := b.Rect()
	cx, cy := r.Center()
	return cx, cy
}

// Update recomputes n's cached extrema indices (MaxXIdx, MinXIdx, MaxYIdx,
// MinYIdx) from the current Block/IoPin positions. Ties are broken
// deterministically by keeping the lower pin index. Nets with P<=1 get all
// extrema set to 0 (or left at -1 if there are no pins at all).
func Update(n *circuit.Net, d *circuit.Design, mode Mode) {
	p := len(n.Pins)
	if p == 0 {
		n.MaxXIdx, n.MinXIdx, n.MaxYIdx, n.MinYIdx = -1, -1, -1, -1
		return
	}
	maxX, minX, maxY, minY := 0, 0, 0, 0
	x0, y0 := coord(n, d, mode, 0)
	maxXv, minXv, maxYv, minYv := x0, x0, y0, y0
	for i := 1; i < p; i++ {
		x, y := coord(n, d, mode, i)
		if x > maxXv {
			maxXv, maxX = x, i
		}
		if x < minXv {
			minXv, minX = x, i
		}
		if y > maxYv {
			maxYv, maxY = y, i
		}
		if y < minYv {
			minYv, minY = y, i
		}
	}
	n.MaxXIdx, n.MinXIdx, n.MaxYIdx, n.MinYIdx = maxX, minX, maxY, minY
}

// UpdateAll recomputes extrema for every net in d.
func UpdateAll(d *circuit.Design, mode Mode) {
	for _, n := range d.Nets() {
		Update(n, d, mode)
	}
}

// HPWL returns the weighted half-perimeter wirelength of a single net,
// using its already-cached extrema (call Update first). Nets with P<=1
// contribute 0, per spec.
func HPWL(n *circuit.Net, d *circuit.Design, mode Mode) float64 {
	if len(n.Pins) <= 1 || n.MaxXIdx < 0 {
		return 0
	}
	xMax, _ := coord(n, d, mode, n.MaxXIdx)
	xMin, _ := coord(n, d, mode, n.MinXIdx)
	_, yMax := coord(n, d, mode, n.MaxYIdx)
	_, yMin := coord(n, d, mode, n.MinYIdx)
	return n.Weight * ((xMax - xMin) + (yMax - yMin))
}

// TotalHPWL sums HPWL over every net in d, refreshing extrema first.
// Property P1: the result is finite and non-negative for any valid input.
func TotalHPWL(d *circuit.Design, mode Mode) float64 {
	UpdateAll(d, mode)
	var total float64
	for _, n := range d.Nets() {
		total += HPWL(n, d, mode)
	}
	return total
}

// Span returns the weighted x-span and y-span of net n (w*(maxx-minx),
// w*(maxy-miny)), using cached extrema.
func Span(n *circuit.Net, d *circuit.Design, mode Mode) (wSpanX, wSpanY float64) {
	if len(n.Pins) <= 1 || n.MaxXIdx < 0 {
		return 0, 0
	}
	xMax, _ := coord(n, d, mode, n.MaxXIdx)
	xMin, _ := coord(n, d, mode, n.MinXIdx)
	_, yMax := coord(n, d, mode, n.MaxYIdx)
	_, yMin := coord(n, d, mode, n.MinYIdx)
	return n.Weight * (xMax - xMin), n.Weight * (yMax - yMin)
}
