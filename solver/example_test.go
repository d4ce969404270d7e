package solver_test

import (
	"fmt"

	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/solver"
)

// ExampleRunToConvergence pulls a single movable block toward the midpoint
// of two fixed blocks it is wired to.
func ExampleRunToConvergence() {
	c := circuit.NewCircuit(0.1, 0.1)
	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 100, URY: 10})
	ct, _ := c.Tech.AddBlockType("BUF", 1, 1)
	pin, _ := c.Tech.AddPinToType(ct, "P", true)
	_ = c.Tech.AddPinRect(pin, 0.5, 0.5, 0.5, 0.5)

	_, _ = c.Design.AddBlock("left", ct, 0, 0, circuit.Fixed, circuit.N)
	_, _ = c.Design.AddBlock("right", ct, 100, 0, circuit.Fixed, circuit.N)
	mid, _ := c.Design.AddBlock("mid", ct, 50, 0, circuit.Placed, circuit.N)

	n0, _ := c.Design.AddNet("n0", 2, 1.0)
	_ = c.Design.AddBlkPinToNet(n0, "left", "P")
	_ = c.Design.AddBlkPinToNet(n0, "mid", "P")
	n1, _ := c.Design.AddNet("n1", 2, 1.0)
	_ = c.Design.AddBlkPinToNet(n1, "mid", "P")
	_ = c.Design.AddBlkPinToNet(n1, "right", "P")

	solver.RunToConvergence(c, nil, nil, 0, solver.WithOuterMaxIter(10))
	fmt.Println(mid.X > 40 && mid.X < 60)
	// Output: true
}
