package circuit

import "fmt"

// Tech owns the CellType catalog. CellTypes are created during technology
// load and frozen once; after Freeze no further pins or rects may be added.
type Tech struct {
	GridX, GridY float64 // placement-grid steps, x and y independent (see spec design note)

	types      []*CellType
	typeIndex  map[string]int
	frozen     bool
}

// NewTech returns an empty technology catalog keyed to the given placement
// grid steps. gridX and gridY must be positive.
func NewTech(gridX, gridY float64) *Tech {
	return &Tech{
		GridX:     gridX,
		GridY:     gridY,
		typeIndex: make(map[string]int),
	}
}

// isGridMultiple reports whether v is within floating-point tolerance of an
// integer multiple of step.
func isGridMultiple(v, step float64) bool {
	if step <= 0 {
		return false
	}
	q := v / step
	return q >= 0 && roundNear(q)
}

func roundFloor(q float64) float64 {
	return float64(int64(q))
}

func roundNear(q float64) bool {
	r := q - roundFloor(q)
	return r < 1e-6 || r > 1-1e-6
}

// AddBlockType registers a new CellType. w and h must be positive and exact
// multiples of GridX/GridY respectively.
func (t *Tech) AddBlockType(name string, w, h float64) (*CellType, error) {
	if t.frozen {
		return nil, fmt.Errorf("circuit: AddBlockType(%q): %w", name, ErrOrdering)
	}
	if _, exists := t.typeIndex[name]; exists {
		return nil, fmt.Errorf("circuit: AddBlockType(%q): %w", name, ErrNameCollision)
	}
	if w <= 0 || h <= 0 || !isGridMultiple(w, t.GridX) || !isGridMultiple(h, t.GridY) {
		return nil, fmt.Errorf("circuit: AddBlockType(%q): w=%v h=%v: %w", name, w, h, ErrGridAlignment)
	}
	ct := &CellType{
		Name:     name,
		Width:    w,
		Height:   h,
		pinIndex: make(map[string]int),
	}
	t.typeIndex[name] = len(t.types)
	t.types = append(t.types, ct)
	return ct, nil
}

// CellTypeByName looks up a CellType by name.
func (t *Tech) CellTypeByName(name string) (*CellType, bool) {
	i, ok := t.typeIndex[name]
	if !ok {
		return nil, false
	}
	return t.types[i], true
}

// CellTypes returns the catalog in insertion order.
func (t *Tech) CellTypes() []*CellType { return t.types }

// AddPinToType inserts a new named pin on ct. Calling this again with the
// same name extends nothing — use AddPinRect to add geometry to the most
// recently added pin.
func (t *Tech) AddPinToType(ct *CellType, pinName string, isInput bool) (*PinTemplate, error) {
	if ct.frozen {
		return nil, fmt.Errorf("circuit: AddPinToType(%q): cell type is frozen: %w", pinName, ErrOrdering)
	}
	if _, exists := ct.pinIndex[pinName]; exists {
		return nil, fmt.Errorf("circuit: AddPinToType(%q): %w", pinName, ErrNameCollision)
	}
	p := &PinTemplate{Name: pinName, IsInput: isInput, owner: ct}
	ct.pinIndex[pinName] = len(ct.Pins)
	ct.Pins = append(ct.Pins, p)
	return p, nil
}

// AddPinRect extends p's geometry with a rectangle. The first call defines
// the base rectangle; the offset table is finalized once the CellType is
// frozen, and any further rect-add to an already-finalized pin fails.
func (t *Tech) AddPinRect(p *PinTemplate, llx, lly, urx, ury float64) error {
	if p.final {
		return fmt.Errorf("circuit: AddPinRect(%q): %w", p.Name, ErrOrdering)
	}
	r := Rect{llx, lly, urx, ury}
	if !p.hasRect {
		p.rect = r
		p.hasRect = true
		return nil
	}
	// extend: union of existing and new rect
	if r.LLX < p.rect.LLX {
		p.rect.LLX = r.LLX
	}
	if r.LLY < p.rect.LLY {
		p.rect.LLY = r.LLY
	}
	if r.URX > p.rect.URX {
		p.rect.URX = r.URX
	}
	if r.URY > p.rect.URY {
		p.rect.URY = r.URY
	}
	return nil
}

// SetWellShape attaches a well shape to ct, validating the abutment
// invariant (§3: N-well and P-well, when both present, must abut along a
// single horizontal edge).
func (t *Tech) SetWellShape(ct *CellType, well WellShape) error {
	if err := validateWellShape(well); err != nil {
		return fmt.Errorf("circuit: SetWellShape(%q): %w", ct.Name, err)
	}
	ct.Well = &well
	return nil
}

// validateWellShape checks the abutment invariant recovered from
// original_source's blocktypewell.cc: when both wells are present, the top
// of one must equal the bottom of the other (within tolerance), and their
// horizontal spans must be identical.
func validateWellShape(w WellShape) error {
	if !w.HasNWell || !w.HasPWell {
		return nil
	}
	const eps = 1e-6
	sameSpan := absf(w.NWell.LLX-w.PWell.LLX) < eps && absf(w.NWell.URX-w.PWell.URX) < eps
	abuts := absf(w.NWell.LLY-w.PWell.URY) < eps || absf(w.PWell.LLY-w.NWell.URY) < eps
	if !sameSpan || !abuts {
		return ErrGeometry
	}
	return nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FreezePins finalizes every pin's offset table across every registered
// CellType without validating a PlacementRegion. Circuit.Freeze calls this
// internally; it is also exported for callers that only need pin geometry
// (e.g. boundtracker-only tests) without a full region/row setup.
func (t *Tech) FreezePins() { t.freezePins() }

// freezePins finalizes every pin's offset table across every registered
// CellType. Called once by Circuit.Freeze.
func (t *Tech) freezePins() {
	if t.frozen {
		return
	}
	for _, ct := range t.types {
		for _, p := range ct.Pins {
			p.finalize()
		}
		ct.frozen = true
	}
	t.frozen = true
}
