package phydb

import (
	"fmt"
	"math"

	"github.com/dali-eda/dali/circuit"
)

func statusFromExternal(s PlacementStatus) circuit.Status {
	switch s {
	case StatusFixed:
		return circuit.Fixed
	case StatusCover:
		return circuit.Cover
	case StatusPlaced:
		return circuit.Placed
	default:
		return circuit.Unplaced
	}
}

func statusToExternal(s circuit.Status) PlacementStatus {
	switch s {
	case circuit.Fixed:
		return StatusFixed
	case circuit.Cover:
		return StatusCover
	case circuit.Placed:
		return StatusPlaced
	default:
		return StatusUnplaced
	}
}

func orientFromName(name string) circuit.Orientation {
	switch name {
	case "S":
		return circuit.S
	case "W":
		return circuit.W
	case "E":
		return circuit.E
	case "FN":
		return circuit.FN
	case "FS":
		return circuit.FS
	case "FW":
		return circuit.FW
	case "FE":
		return circuit.FE
	default:
		return circuit.N
	}
}

// LoadCircuit builds a circuit.Circuit from a ConsumerView, registering
// every Macro as a CellType, every Component as a Block, every
// ExternalIoPin as an IoPin, and every ExternalNet as a Net (spec §6.1).
// Coordinates are taken as already expressed in placement-grid units by
// the caller; unit conversion from DEF-units is the caller's
// responsibility (this core has no DEF parser — spec Non-goal).
func LoadCircuit(view ConsumerView, gridX, gridY float64) (*circuit.Circuit, error) {
	c := circuit.NewCircuit(gridX, gridY)

	for _, m := range view.Macros() {
		ct, err := c.Tech.AddBlockType(m.Name, m.Width, m.Height)
		if err != nil {
			return nil, fmt.Errorf("phydb: LoadCircuit: macro %q: %w", m.Name, err)
		}
		if m.Well != nil {
			well := circuit.WellShape{
				HasNWell: m.Well.HasNWell,
				NWell:    circuit.Rect{LLX: m.Well.NWellLLX, LLY: m.Well.NWellLLY, URX: m.Well.NWellURX, URY: m.Well.NWellURY},
				HasPWell: m.Well.HasPWell,
				PWell:    circuit.Rect{LLX: m.Well.PWellLLX, LLY: m.Well.PWellLLY, URX: m.Well.PWellURX, URY: m.Well.PWellURY},
			}
			if err := c.Tech.SetWellShape(ct, well); err != nil {
				return nil, fmt.Errorf("phydb: LoadCircuit: macro %q well: %w", m.Name, err)
			}
		}
		for _, p := range m.Pins {
			pt, err := c.Tech.AddPinToType(ct, p.Name, p.IsInput)
			if err != nil {
				return nil, fmt.Errorf("phydb: LoadCircuit: macro %q pin %q: %w", m.Name, p.Name, err)
			}
			for _, r := range p.Rects {
				if err := c.Tech.AddPinRect(pt, r.LLX, r.LLY, r.URX, r.URY); err != nil {
					return nil, fmt.Errorf("phydb: LoadCircuit: macro %q pin %q rect: %w", m.Name, p.Name, err)
				}
			}
		}
	}

	for _, comp := range view.Components() {
		ct, ok := c.Tech.CellTypeByName(comp.MacroName)
		if !ok {
			return nil, fmt.Errorf("phydb: LoadCircuit: component %q: %w", comp.Name, circuit.ErrMissingReference)
		}
		_, err := c.Design.AddBlock(comp.Name, ct, float64(comp.X), float64(comp.Y), statusFromExternal(comp.Status), orientFromName(comp.Orient))
		if err != nil {
			return nil, fmt.Errorf("phydb: LoadCircuit: component %q: %w", comp.Name, err)
		}
	}

	for _, io := range view.IoPins() {
		dir := circuit.DirInput
		switch io.Dir {
		case DirOutput:
			dir = circuit.DirOutput
		case DirInout:
			dir = circuit.DirInout
		}
		ioPin, err := c.Design.AddIoPin(io.Name, dir, io.Use)
		if err != nil {
			return nil, fmt.Errorf("phydb: LoadCircuit: io pin %q: %w", io.Name, err)
		}
		if io.HasCoord {
			ioPin.X, ioPin.Y = float64(io.X), float64(io.Y)
		}
		ioPin.Status = statusFromExternal(io.Status)
	}

	for _, n := range view.Nets() {
		capacity := len(n.Pins) + len(n.IoPins)
		net, err := c.Design.AddNet(n.Name, capacity, 1.0)
		if err != nil {
			return nil, fmt.Errorf("phydb: LoadCircuit: net %q: %w", n.Name, err)
		}
		for _, pr := range n.Pins {
			if err := c.Design.AddBlkPinToNet(net, pr.Component, pr.Pin); err != nil {
				return nil, fmt.Errorf("phydb: LoadCircuit: net %q: %w", n.Name, err)
			}
		}
		for _, ioName := range n.IoPins {
			if err := c.Design.AddIoPinToNet(net, ioName); err != nil {
				return nil, fmt.Errorf("phydb: LoadCircuit: net %q: %w", n.Name, err)
			}
		}
	}

	return c, nil
}

// WriteBack reports the final placement of every Block and IoPin to a
// ProducerView, converting placement-grid coordinates to DEF-units via
// spec §6.2's formula: DEF_coord = round(coord * gridValue *
// defUnitsPerMicron) + dieOffset.
func WriteBack(c *circuit.Circuit, view ProducerView, gridValue, defUnitsPerMicron float64, dieOffsetX, dieOffsetY int64) error {
	toDef := func(coord float64, offset int64) int64 {
		return int64(math.Round(coord*gridValue*defUnitsPerMicron)) + offset
	}

	for _, b := range c.Design.Blocks() {
		x := toDef(b.X, dieOffsetX)
		y := toDef(b.Y, dieOffsetY)
		if err := view.SetComponentPlacement(b.Name, x, y, b.Orient.String(), statusToExternal(b.Status)); err != nil {
			return fmt.Errorf("phydb: WriteBack: block %q: %w", b.Name, err)
		}
	}
	for _, io := range c.Design.IoPins() {
		x := toDef(io.X, dieOffsetX)
		y := toDef(io.Y, dieOffsetY)
		if err := view.SetIoPinPlacement(io.Name, x, y, statusToExternal(io.Status)); err != nil {
			return fmt.Errorf("phydb: WriteBack: io pin %q: %w", io.Name, err)
		}
	}
	return nil
}
