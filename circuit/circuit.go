package circuit

import (
	"fmt"
	"math"
)

// Circuit is the single root object passed between placer components. It
// owns a Tech aggregate (CellTypes), a Design aggregate (Blocks/IoPins/
// Nets) and the Row/PlacementRegion model built over them.
type Circuit struct {
	Tech   *Tech
	Design *Design
	Region PlacementRegion
	Rows   []Row

	frozen bool
}

// NewCircuit wires a fresh Tech+Design pair under the given placement grid.
func NewCircuit(gridX, gridY float64) *Circuit {
	t := NewTech(gridX, gridY)
	return &Circuit{Tech: t, Design: NewDesign(t)}
}

// SetRegion assigns the placement region. Must be called before Freeze.
func (c *Circuit) SetRegion(r PlacementRegion) { c.Region = r }

// AddRow appends one row to the model. Rows are validated against Region
// at Freeze time, not here (rows may be added before the region is
// finalized).
func (c *Circuit) AddRow(r Row) { c.Rows = append(c.Rows, r) }

// BuildUniformRows populates c.Rows with nRows evenly stacked strips of the
// given height spanning the full width of c.Region, alternating N/FS
// orientation (the usual standard-cell row-flip pattern so adjacent rows'
// wells abut).
func (c *Circuit) BuildUniformRows(rowHeight float64, nWellH, pWellH float64) {
	c.Rows = c.Rows[:0]
	y := c.Region.LLY
	i := 0
	for y+rowHeight <= c.Region.URY+1e-9 {
		orient := N
		if i%2 == 1 {
			orient = FS
		}
		c.Rows = append(c.Rows, Row{
			LLY:    y,
			Height: rowHeight,
			Orient: orient,
			NWellH: nWellH,
			PWellH: pWellH,
			Segments: []RowSegment{
				{LLX: c.Region.LLX, Width: c.Region.Width()},
			},
		})
		y += rowHeight
		i++
	}
}

// Freeze finalizes the Tech pin-offset tables and validates the
// PlacementRegion/Row invariants (§3 PlacementRegion). A pin that was never
// given a rectangle is an ErrMissingReference. maxAggregateArea, if
// positive, bounds the sum of movable-block areas; exceeding it is an
// OverflowError (the area-accumulator-range check from §7, modeled in
// floating point rather than a fixed-width integer accumulator).
func (c *Circuit) Freeze(maxAggregateArea float64) error {
	if c.frozen {
		return nil
	}
	if !isGridMultiple(c.Region.Width(), c.Tech.GridX) {
		return fmt.Errorf("circuit: Freeze: region width %v: %w", c.Region.Width(), ErrGridAlignment)
	}
	if len(c.Rows) > 0 && !isGridMultiple(c.Region.Height(), c.Rows[0].Height) {
		return fmt.Errorf("circuit: Freeze: region height %v: %w", c.Region.Height(), ErrGridAlignment)
	}
	for _, ct := range c.Tech.CellTypes() {
		for _, p := range ct.Pins {
			if !p.hasRect {
				return fmt.Errorf("circuit: Freeze: pin %q of %q has no geometry: %w", p.Name, ct.Name, ErrMissingReference)
			}
		}
	}
	for i, row := range c.Rows {
		if row.LLY < c.Region.LLY-1e-9 || row.LLY+row.Height > c.Region.URY+1e-9 {
			return fmt.Errorf("circuit: Freeze: row %d out of region: %w", i, ErrGridAlignment)
		}
	}

	var total float64
	for _, b := range c.Design.Blocks() {
		if b.Status.Movable() {
			total += b.Width() * b.orientedHeight()
		}
	}
	if maxAggregateArea > 0 && (total > maxAggregateArea || math.IsInf(total, 1)) {
		return fmt.Errorf("circuit: Freeze: aggregate area %v exceeds %v: %w", total, maxAggregateArea, ErrOverflow)
	}

	c.Tech.freezePins()
	c.frozen = true
	return nil
}

// Frozen reports whether Freeze has completed successfully.
func (c *Circuit) Frozen() bool { return c.frozen }
