package spreader_test

import (
	"fmt"

	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/spreader"
)

// ExampleSpread relieves an overfilled corner of a region by redistributing
// cells across the available white space.
func ExampleSpread() {
	c := circuit.NewCircuit(0.1, 0.1)
	ct, _ := c.Tech.AddBlockType("CELL", 1, 2)
	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 20, URY: 20})
	c.BuildUniformRows(2, 0, 0)
	c.Tech.FreezePins()

	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("c%d", i)
		_, _ = c.Design.AddBlock(name, ct, 0, 0, circuit.Placed, circuit.N)
	}

	spreader.Spread(c, spreader.WithTargetDensity(0.5), spreader.WithBinRowMultiple(2))

	overlapping := false
	blocks := c.Design.Blocks()
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Rect().Overlaps(blocks[j].Rect()) {
				overlapping = true
			}
		}
	}
	fmt.Println(overlapping)
	// Output: false
}
