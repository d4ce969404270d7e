package phydb_test

import (
	"fmt"

	"github.com/dali-eda/dali/phydb"
)

// ExampleLoadCircuit builds a circuit from a two-component Fake view and
// then writes a placement decision back out in DEF units.
func ExampleLoadCircuit() {
	f := phydb.NewFake()
	f.MacroList = []phydb.Macro{
		{Name: "BUF", Width: 1, Height: 2},
	}
	f.ComponentList = []phydb.Component{
		{Name: "b0", MacroName: "BUF", Status: phydb.StatusPlaced, Orient: "N"},
	}

	c, err := phydb.LoadCircuit(f, 0.1, 0.1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	c.Design.Blocks()[0].X = 3.0
	c.Design.Blocks()[0].Y = 1.5
	if err := phydb.WriteBack(c, f, 1.0, 1000.0, 0, 0); err != nil {
		fmt.Println("error:", err)
		return
	}

	placed, _ := f.PlacedComponent("b0")
	fmt.Println(placed.X, placed.Y)
	// Output: 3000 1500
}
