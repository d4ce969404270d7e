package circuit

import (
	"math"
	"testing"
)

// approxEqual reports whether a and b are within a small tolerance.
func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestOrientation_RoundTrip verifies property P4: transforming by O followed
// by its inverse orientation returns the base point.
func TestOrientation_RoundTrip(t *testing.T) {
	const w, h = 0.8, 1.6
	x, y := 0.1, 1.5

	for _, o := range allOrientations {
		ow, oh := OrientedDims(o, w, h)
		fx, fy := transformPoint(o, x, y, w, h)

		inv := o.Inverse()
		bx, by := transformPoint(inv, fx, fy, ow, oh)

		if !approxEqual(bx, x) || !approxEqual(by, y) {
			t.Errorf("orientation %s: round trip got (%v,%v), want (%v,%v)", o, bx, by, x, y)
		}
	}
}

// TestPinTemplate_FSOffset is scenario T6: a cell with a single pin whose
// base rectangle center sits at (0.1,1.5) in a 0.8x1.6 cell must resolve to
// absolute (10.1,20.1) under orientation FS at block lower-left (10,20).
func TestPinTemplate_FSOffset(t *testing.T) {
	tech := NewTech(0.1, 0.1)
	ct, err := tech.AddBlockType("INV", 0.8, 1.6)
	if err != nil {
		t.Fatalf("AddBlockType: %v", err)
	}
	pin, err := tech.AddPinToType(ct, "A", true)
	if err != nil {
		t.Fatalf("AddPinToType: %v", err)
	}
	// A zero-area rect centered at (0.1,1.5).
	if err := tech.AddPinRect(pin, 0.1, 1.5, 0.1, 1.5); err != nil {
		t.Fatalf("AddPinRect: %v", err)
	}
	tech.freezePins()

	dx, dy := pin.Offset(FS)
	if !approxEqual(dx, 0.1) || !approxEqual(dy, 0.1) {
		t.Fatalf("FS offset = (%v,%v), want (0.1,0.1)", dx, dy)
	}

	d := NewDesign(tech)
	blk, err := d.AddBlock("inv1", ct, 10, 20, Placed, FS)
	if err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	ax, ay := blk.PinAbs(pin)
	if !approxEqual(ax, 10.1) || !approxEqual(ay, 20.1) {
		t.Fatalf("absolute pin coord = (%v,%v), want (10.1,20.1)", ax, ay)
	}
}

func TestOrientedDims_SwapOnRotation(t *testing.T) {
	w, h := OrientedDims(E, 2, 3)
	if w != 3 || h != 2 {
		t.Fatalf("E should swap dims, got (%v,%v)", w, h)
	}
	w, h = OrientedDims(FN, 2, 3)
	if w != 2 || h != 3 {
		t.Fatalf("FN should not swap dims, got (%v,%v)", w, h)
	}
}
