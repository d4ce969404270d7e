package circuit

import "gonum.org/v1/gonum/mat"

// Orientation is a closed, tagged enumeration of the eight standard-cell
// placement orientations. Each tag carries a pure affine transform — no
// inheritance, no dynamic dispatch (see spec design note on orientation).
type Orientation int

const (
	N Orientation = iota
	S
	W
	E
	FN
	FS
	FW
	FE
)

// String renders the DEF-style orientation name.
func (o Orientation) String() string {
	switch o {
	case N:
		return "N"
	case S:
		return "S"
	case W:
		return "W"
	case E:
		return "E"
	case FN:
		return "FN"
	case FS:
		return "FS"
	case FW:
		return "FW"
	case FE:
		return "FE"
	default:
		return "?"
	}
}

// Inverse returns the orientation O' such that applying O then O' (with the
// dimensions swapped as O would swap them) returns a point to its original
// location. Rotations E and W are mutual inverses; every other orientation,
// including the reflections, is its own inverse.
func (o Orientation) Inverse() Orientation {
	switch o {
	case E:
		return W
	case W:
		return E
	default:
		return o
	}
}

// swapsDims reports whether this orientation swaps the width/height axes
// (the two quarter-turn rotations and their mirrored forms FE/FW do; N, S,
// FN and FS do not).
func (o Orientation) swapsDims() bool {
	return o == E || o == W || o == FE || o == FW
}

// linear returns the 2x2 linear part of the orientation's affine transform,
// expressed as a dense matrix so the transform can be applied with a single
// MulVec call instead of hand-written switch-case trigonometry.
func (o Orientation) linear() *mat.Dense {
	switch o {
	case N:
		return mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	case S:
		return mat.NewDense(2, 2, []float64{-1, 0, 0, -1})
	case E:
		return mat.NewDense(2, 2, []float64{0, -1, 1, 0})
	case W:
		return mat.NewDense(2, 2, []float64{0, 1, -1, 0})
	case FN:
		return mat.NewDense(2, 2, []float64{-1, 0, 0, 1})
	case FS:
		return mat.NewDense(2, 2, []float64{1, 0, 0, -1})
	case FE:
		return mat.NewDense(2, 2, []float64{0, -1, -1, 0})
	case FW:
		return mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	default:
		return mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	}
}

// translation returns the constant offset added after the linear map so the
// transformed point lands back in the first quadrant of a cell with the
// given (pre-transform) width w and height h.
func (o Orientation) translation(w, h float64) (tx, ty float64) {
	switch o {
	case N:
		return 0, 0
	case S:
		return w, h
	case E:
		return h, 0
	case W:
		return 0, w
	case FN:
		return w, 0
	case FS:
		return 0, h
	case FE:
		return h, w
	case FW:
		return 0, 0
	default:
		return 0, 0
	}
}

// transformPoint maps a point (x,y) inside a w x h cell through orientation
// o, returning its image in the (possibly axis-swapped) oriented footprint.
func transformPoint(o Orientation, x, y, w, h float64) (float64, float64) {
	in := mat.NewVecDense(2, []float64{x, y})
	var out mat.VecDense
	out.MulVec(o.linear(), in)
	tx, ty := o.translation(w, h)
	return out.AtVec(0) + tx, out.AtVec(1) + ty
}

// OrientedDims returns the (width, height) of a w x h cell once placed under
// orientation o; E, W, FE and FW exchange the two axes.
func OrientedDims(o Orientation, w, h float64) (float64, float64) {
	if o.swapsDims() {
		return h, w
	}
	return w, h
}

// allOrientations enumerates the eight tags in a stable, deterministic order.
var allOrientations = [8]Orientation{N, S, W, E, FN, FS, FW, FE}
