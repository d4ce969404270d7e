package placer_test

import (
	"fmt"

	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/placer"
)

// ExampleRun places two inverter cells inside a 10x10 region and reports
// that the pipeline converges without leaving any overlap.
func ExampleRun() {
	c := circuit.NewCircuit(0.1, 0.1)
	ct, _ := c.Tech.AddBlockType("INV", 0.8, 1.6)
	pinIn, _ := c.Tech.AddPinToType(ct, "A", true)
	_ = c.Tech.AddPinRect(pinIn, 0, 0.8, 0, 0.8)
	pinOut, _ := c.Tech.AddPinToType(ct, "Y", false)
	_ = c.Tech.AddPinRect(pinOut, 0.8, 0.8, 0.8, 0.8)

	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 10, URY: 10})
	c.BuildUniformRows(1.6, 0, 0)
	c.Tech.FreezePins()

	_, _ = c.Design.AddBlock("inv1", ct, 0, 0, circuit.Placed, circuit.N)
	_, _ = c.Design.AddBlock("inv2", ct, 0, 0, circuit.Placed, circuit.N)

	n0, _ := c.Design.AddNet("n_mid", 2, 1.0)
	_ = c.Design.AddBlkPinToNet(n0, "inv1", "Y")
	_ = c.Design.AddBlkPinToNet(n0, "inv2", "A")

	result, err := placer.Run(c, placer.WithSeed(42), placer.WithMaxIter(10))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	blocks := c.Design.Blocks()
	inside := true
	for _, b := range blocks {
		r := b.Rect()
		if r.LLX < c.Region.LLX || r.URX > c.Region.URX || r.LLY < c.Region.LLY || r.URY > c.Region.URY {
			inside = false
		}
	}
	fmt.Println(inside, result.FinalHPWL >= 0)
	// Output: true true
}
