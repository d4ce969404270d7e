// Package solver builds and solves the two symmetric positive-definite
// sparse systems (one per axis) of the bound-to-bound (B2B) quadratic
// wirelength model, using Jacobi-preconditioned conjugate gradient (spec
// §4.3). Vector arithmetic inside CG is delegated to gonum/floats rather
// than hand-rolled loops — the one real numerical-computing dependency
// visible anywhere in the retrieval pack (see SPEC_FULL.md's DOMAIN STACK).
package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dali-eda/dali/boundtracker"
	"github.com/dali-eda/dali/circuit"
)

// Axis selects which coordinate the solver is currently building/solving.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// varMap assigns each movable Block a dense variable index (0..len-1),
// mirroring the teacher's "arena + stable integer indices" convention
// (spec design note) instead of caching pointers.
type varMap struct {
	blockToVar []int // len(design.Blocks()); -1 if not movable
	varToBlock []int
}

func buildVarMap(d *circuit.Design) *varMap {
	blocks := d.Blocks()
	vm := &varMap{blockToVar: make([]int, len(blocks))}
	for i, b := range blocks {
		if b.Status.Movable() {
			vm.blockToVar[i] = len(vm.varToBlock)
			vm.varToBlock = append(vm.varToBlock, i)
		} else {
			vm.blockToVar[i] = -1
		}
	}
	return vm
}

func (vm *varMap) n() int { return len(vm.varToBlock) }

// avgBlockDim returns the average width and height of movable blocks, used
// to scale epsilon and to bound clamping.
func avgBlockDim(d *circuit.Design) (avgW, avgH float64) {
	var n int
	for _, b := range d.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		avgW += b.Width()
		avgH += b.Rect().Height()
		n++
	}
	if n == 0 {
		return 1, 1
	}
	return avgW / float64(n), avgH / float64(n)
}

// pinCoord returns (coordinate-on-axis, dx-or-dy offset from its owning
// block, variable index or -1 if fixed) for pin i of net n.
func pinCoord(n *circuit.Net, d *circuit.Design, vm *varMap, axis Axis, i int) (coordOnAxis, offset float64, v int) {
	p := n.Pins[i]
	if p.IsIoPin() {
		io := d.IoPins()[p.IoIdx]
		if axis == AxisX {
			return io.X, 0, -1
		}
		return io.Y, 0, -1
	}
	b := d.Blocks()[p.BlockIdx]
	ax, ay := b.PinAbs(p.PinTmpl)
	var dx, dy float64
	if axis == AxisX {
		dx = ax - b.X
	} else {
		dy = ay - b.Y
	}
	v = vm.blockToVar[p.BlockIdx]
	if axis == AxisX {
		return ax, dx, v
	}
	return ay, dy, v
}

// buildSystem assembles the B2B sparse system for one axis. anchors, if
// non-nil, adds the anchor-pull RHS/diagonal term (spec §4.3 "Anchor
// extension") with pull strength alpha.
func buildSystem(d *circuit.Design, vm *varMap, axis Axis, eps float64, anchors []float64, alpha float64) (*CSR, []float64) {
	n := vm.n()
	b := make([]float64, n)
	var triplets []Triplet

	addPair := func(pjCoord, pjOff float64, vj int, pkCoord, pkOff float64, vk int, w float64) {
		switch {
		case vj >= 0 && vk >= 0:
			if vj == vk {
				return
			}
			diff := pjOff - pkOff
			triplets = append(triplets,
				Triplet{vj, vj, w}, Triplet{vk, vk, w},
				Triplet{vj, vk, -w}, Triplet{vk, vj, -w})
			b[vj] -= w * diff
			b[vk] += w * diff
		case vj >= 0:
			triplets = append(triplets, Triplet{vj, vj, w})
			b[vj] += w * (pkCoord - pjOff)
		case vk >= 0:
			triplets = append(triplets, Triplet{vk, vk, w})
			b[vk] += w * (pjCoord - pkOff)
		}
	}

	for _, net := range d.Nets() {
		p := len(net.Pins)
		if p <= 1 || net.MaxXIdx < 0 {
			continue
		}
		var iMax, iMin int
		if axis == AxisX {
			iMax, iMin = net.MaxXIdx, net.MinXIdx
		} else {
			iMax, iMin = net.MaxYIdx, net.MinYIdx
		}
		invP := net.InvP
		if invP == 0 {
			continue
		}
		maxCoord, maxOff, maxVar := pinCoord(net, d, vm, axis, iMax)
		minCoord, minOff, minVar := pinCoord(net, d, vm, axis, iMin)

		for j := 0; j < p; j++ {
			if j == iMax {
				continue
			}
			jc, jo, jv := pinCoord(net, d, vm, axis, j)
			w := invP / math.Max(math.Abs(jc-maxCoord), eps)
			addPair(jc, jo, jv, maxCoord, maxOff, maxVar, w)
		}
		for j := 0; j < p; j++ {
			if j == iMin || j == iMax {
				continue
			}
			jc, jo, jv := pinCoord(net, d, vm, axis, j)
			w := invP / math.Max(math.Abs(jc-minCoord), eps)
			addPair(jc, jo, jv, minCoord, minOff, minVar, w)
		}
	}

	if anchors != nil {
		for i, blockIdx := range vm.varToBlock {
			blk := d.Blocks()[blockIdx]
			cur := blk.X
			if axis == AxisY {
				cur = blk.Y
			}
			target := anchors[blockIdx]
			w := alpha / math.Max(math.Abs(cur-target), eps)
			triplets = append(triplets, Triplet{i, i, w})
			b[i] += w * target
		}
	}

	csr := BuildCSR(n, triplets, 1e-6)
	return csr, b
}

// conjugateGradient solves A*x = b with Jacobi preconditioning, starting
// from x0, stopping when ||r||^2/N falls below precision or maxIter is
// reached. It returns the final x and the number of iterations taken.
func conjugateGradient(a *CSR, b, x0 []float64, precision float64, maxIter int) ([]float64, int) {
	n := a.N
	if n == 0 {
		return []float64{}, 0
	}
	diag := a.Diag()
	minv := make([]float64, n)
	for i, d := range diag {
		if d == 0 {
			minv[i] = 1
		} else {
			minv[i] = 1 / d
		}
	}

	x := append([]float64(nil), x0...)
	r := a.MatVec(x)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	z := make([]float64, n)
	for i := range z {
		z[i] = minv[i] * r[i]
	}
	p := append([]float64(nil), z...)
	rz := floats.Dot(r, z)

	iter := 0
	for ; iter < maxIter; iter++ {
		rnorm2 := floats.Dot(r, r)
		if rnorm2/float64(n) < precision {
			break
		}
		ap := a.MatVec(p)
		denom := floats.Dot(p, ap)
		if denom == 0 {
			break
		}
		alpha := rz / denom
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		for i := range z {
			z[i] = minv[i] * r[i]
		}
		rzNew := floats.Dot(r, z)
		if rz == 0 {
			break
		}
		beta := rzNew / rz
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
		rz = rzNew
	}
	return x, iter
}

// applyAxis writes solved axis coordinates back into the design's movable
// Blocks, clamping any solution that falls outside the region inward by
// one average-cell dimension (spec §4.3).
func applyAxis(d *circuit.Design, vm *varMap, axis Axis, x []float64, region circuit.PlacementRegion, avgW, avgH float64) {
	for v, blockIdx := range vm.varToBlock {
		b := d.Blocks()[blockIdx]
		val := x[v]
		if axis == AxisX {
			if val < region.LLX {
				val = region.LLX + avgW
			} else if val > region.URX {
				val = region.URX - avgW
			}
			b.X = val
		} else {
			if val < region.LLY {
				val = region.LLY + avgH
			} else if val > region.URY {
				val = region.URY - avgH
			}
			b.Y = val
		}
	}
}

// Result summarizes one RunToConvergence call.
type Result struct {
	HPWLx, HPWLy     float64
	IterationsX      int
	IterationsY      int
}

// RunToConvergence rebuilds and resolves each axis system until per-axis
// HPWL stabilizes (spec §4.3 outer loop) or the outer iteration budget is
// exhausted. anchors, when non-nil, adds the anchor-pull term with the
// given alpha (spec §4.3 "Anchor extension"); pass nil/0 for the
// unanchored lower-bound solve.
func RunToConvergence(c *circuit.Circuit, anchorsX, anchorsY []float64, alpha float64, opts ...Option) Result {
	cfg := newConfig(opts...)
	d := c.Design
	vm := buildVarMap(d)
	avgW, avgH := avgBlockDim(d)
	epsX := cfg.epsilonFraction * avgW
	epsY := cfg.epsilonFraction * avgH
	if epsX <= 0 {
		epsX = 1e-6
	}
	if epsY <= 0 {
		epsY = 1e-6
	}

	res := Result{}
	prevHPWLx, prevHPWLy := math.Inf(1), math.Inf(1)

	for axisIter := 0; axisIter < cfg.outerMaxIter; axisIter++ {
		boundtracker.UpdateAll(d, boundtracker.PinToPin)

		x0 := make([]float64, vm.n())
		for v, bi := range vm.varToBlock {
			x0[v] = d.Blocks()[bi].X
		}
		ax, bx := buildSystem(d, vm, AxisX, epsX, anchorsX, alpha)
		xSol, itx := conjugateGradient(ax, bx, x0, cfg.cgPrecision, cfg.cgMaxIter)
		applyAxis(d, vm, AxisX, xSol, c.Region, avgW, avgH)
		res.IterationsX += itx

		y0 := make([]float64, vm.n())
		for v, bi := range vm.varToBlock {
			y0[v] = d.Blocks()[bi].Y
		}
		ay, by := buildSystem(d, vm, AxisY, epsY, anchorsY, alpha)
		ySol, ity := conjugateGradient(ay, by, y0, cfg.cgPrecision, cfg.cgMaxIter)
		applyAxis(d, vm, AxisY, ySol, c.Region, avgW, avgH)
		res.IterationsY += ity

		boundtracker.UpdateAll(d, boundtracker.PinToPin)
		var hx, hy float64
		for _, n := range d.Nets() {
			wx, wy := boundtracker.Span(n, d, boundtracker.PinToPin)
			hx += wx
			hy += wy
		}
		res.HPWLx, res.HPWLy = hx, hy

		convergedX := prevHPWLx != 0 && math.Abs(1-hx/prevHPWLx) < cfg.outerPrecision
		convergedY := prevHPWLy != 0 && math.Abs(1-hy/prevHPWLy) < cfg.outerPrecision
		if math.IsInf(prevHPWLx, 1) {
			convergedX = false
		}
		if math.IsInf(prevHPWLy, 1) {
			convergedY = false
		}
		prevHPWLx, prevHPWLy = hx, hy
		if convergedX && convergedY {
			break
		}
	}
	return res
}
