package boundtracker_test

import (
	"math"
	"testing"

	"github.com/dali-eda/dali/boundtracker"
	"github.com/dali-eda/dali/circuit"
)

func buildTwoPinNet(t *testing.T) (*circuit.Design, *circuit.Net) {
	t.Helper()
	tech := circuit.NewTech(0.1, 0.1)
	ct, _ := tech.AddBlockType("BUF", 1, 1)
	pin, _ := tech.AddPinToType(ct, "A", true)
	_ = tech.AddPinRect(pin, 0.5, 0.5, 0.5, 0.5)
	tech.FreezePins()

	d := circuit.NewDesign(tech)
	_, _ = d.AddBlock("b0", ct, 0, 0, circuit.Placed, circuit.N)
	_, _ = d.AddBlock("b1", ct, 10, 10, circuit.Placed, circuit.N)

	n, _ := d.AddNet("n0", 2, 2.0)
	_ = d.AddBlkPinToNet(n, "b0", "A")
	_ = d.AddBlkPinToNet(n, "b1", "A")
	return d, n
}

// TestHPWL_TwoPinNet verifies weighted HPWL == weight*((dx)+(dy)) for a
// simple two-pin net (scenario T3's starting configuration).
func TestHPWL_TwoPinNet(t *testing.T) {
	d, n := buildTwoPinNet(t)
	boundtracker.Update(n, d, boundtracker.PinToPin)

	got := boundtracker.HPWL(n, d, boundtracker.PinToPin)
	want := 2.0 * ((10.5 - 0.5) + (10.5 - 0.5))
	if got != want {
		t.Fatalf("HPWL = %v, want %v", got, want)
	}
	if n.MaxXIdx != 1 || n.MinXIdx != 0 {
		t.Fatalf("extrema indices wrong: maxX=%d minX=%d", n.MaxXIdx, n.MinXIdx)
	}
}

// TestHPWL_SinglePinNetIsZero verifies the P<=1 contribution-is-zero rule.
func TestHPWL_SinglePinNetIsZero(t *testing.T) {
	tech := circuit.NewTech(0.1, 0.1)
	ct, _ := tech.AddBlockType("BUF", 1, 1)
	pin, _ := tech.AddPinToType(ct, "A", true)
	_ = tech.AddPinRect(pin, 0, 0, 0, 0)
	tech.FreezePins()

	d := circuit.NewDesign(tech)
	_, _ = d.AddBlock("b0", ct, 0, 0, circuit.Placed, circuit.N)
	n, _ := d.AddNet("n0", 1, 1.0)
	_ = d.AddBlkPinToNet(n, "b0", "A")

	boundtracker.Update(n, d, boundtracker.PinToPin)
	if got := boundtracker.HPWL(n, d, boundtracker.PinToPin); got != 0 {
		t.Fatalf("HPWL for P=1 net = %v, want 0", got)
	}
}

// TestTotalHPWL_NonNegativeAndFinite checks property P1 across a small
// single-net design.
func TestTotalHPWL_NonNegativeAndFinite(t *testing.T) {
	d, _ := buildTwoPinNet(t)
	total := boundtracker.TotalHPWL(d, boundtracker.PinToPin)
	if total < 0 {
		t.Fatalf("total HPWL negative: %v", total)
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		t.Fatalf("total HPWL not finite: %v", total)
	}
}
