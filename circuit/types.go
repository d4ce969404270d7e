package circuit

// Status is the placement status of a Block or IoPin.
// Movability = Status is Placed or Unplaced; immovability = Status is Fixed
// or Cover.
type Status int

const (
	Unplaced Status = iota
	Placed
	Fixed
	Cover
)

func (s Status) Movable() bool { return s == Placed || s == Unplaced }

// Rect is an axis-aligned (llx,lly,urx,ury) rectangle in placement-grid
// units.
type Rect struct {
	LLX, LLY, URX, URY float64
}

func (r Rect) Width() float64  { return r.URX - r.LLX }
func (r Rect) Height() float64 { return r.URY - r.LLY }
func (r Rect) Center() (float64, float64) {
	return (r.LLX + r.URX) / 2, (r.LLY + r.URY) / 2
}

// Overlaps reports whether r and o share positive area.
func (r Rect) Overlaps(o Rect) bool {
	return r.LLX < o.URX && o.LLX < r.URX && r.LLY < o.URY && o.LLY < r.URY
}

// WellShape describes the optional N-well and P-well rectangles of a
// CellType. When both are present they must abut along a single horizontal
// edge (see circuit.validateWellShape).
type WellShape struct {
	HasNWell bool
	NWell    Rect
	HasPWell bool
	PWell    Rect
}

// PinTemplate is a named port on a CellType: an I/O direction flag, a base
// rectangle, and a precomputed table of eight (dx,dy) offsets indexed by
// Orientation. The table is finalized once, after the last rect-add, and is
// read-only from then on (safe for concurrent reads, like a frozen
// CellType).
type PinTemplate struct {
	Name    string
	IsInput bool
	owner   *CellType

	rect     Rect
	hasRect  bool
	final    bool
	offsets  [8]struct{ DX, DY float64 }
}

// Owner returns the CellType this PinTemplate belongs to.
func (p *PinTemplate) Owner() *CellType { return p.owner }

// Offset returns the precomputed (dx,dy) displacement of this pin's
// reference point (the base rectangle's center) under orientation o. Valid
// only after the owning CellType has been frozen.
func (p *PinTemplate) Offset(o Orientation) (dx, dy float64) {
	e := p.offsets[o]
	return e.DX, e.DY
}

// finalize computes the eight-entry offset table from the base rectangle
// and the owning CellType's width/height. Idempotent; called once by
// Tech.freezePins.
func (p *PinTemplate) finalize() {
	if p.final {
		return
	}
	cx, cy := p.rect.Center()
	w, h := p.owner.Width, p.owner.Height
	for _, o := range allOrientations {
		dx, dy := transformPoint(o, cx, cy, w, h)
		p.offsets[o] = struct{ DX, DY float64 }{dx, dy}
	}
	p.final = true
}

// CellType is an immutable template created during technology load and
// never mutated after Tech.FreezePins. Width/Height are in placement-grid
// units; Pins is keyed by insertion order for deterministic iteration.
type CellType struct {
	Name          string
	Width, Height float64
	Pins          []*PinTemplate
	pinIndex      map[string]int
	Well          *WellShape
	frozen        bool
}

// PinByName looks up a PinTemplate by name; ok is false if absent.
func (c *CellType) PinByName(name string) (*PinTemplate, bool) {
	i, ok := c.pinIndex[name]
	if !ok {
		return nil, false
	}
	return c.Pins[i], true
}

// Block is a cell instance. Movability = Status Placed/Unplaced, immovable
// = Fixed/Cover. (X,Y) is the lower-left corner and may be fractional
// during the analytical phase. EffHeight, when non-zero, overrides
// Type.Height for row-fit computations (tall/short standard cells built on
// the same template).
type Block struct {
	Name      string
	Type      *CellType
	X, Y      float64
	Orient    Orientation
	Status    Status
	EffHeight float64 // 0 means "use Type.Height"
	Nets      []int   // indices into Design.nets, kept in sync with Net membership
}

// Height returns the effective height used for row fit and overlap tests.
func (b *Block) Height() float64 {
	if b.EffHeight > 0 {
		return b.EffHeight
	}
	return b.Type.Height
}

// Width returns the block's width under its current orientation.
func (b *Block) Width() float64 {
	w, _ := OrientedDims(b.Orient, b.Type.Width, b.Type.Height)
	return w
}

// orientedHeight returns the block's height under its current orientation,
// given that EffHeight (if any) already accounts for the untransformed
// cell, matching how Dali treats effective height as a row-fit override
// rather than a geometry override.
func (b *Block) orientedHeight() float64 {
	_, h := OrientedDims(b.Orient, b.Type.Width, b.Height())
	return h
}

// Rect returns the block's current bounding rectangle.
func (b *Block) Rect() Rect {
	w := b.Width()
	h := b.orientedHeight()
	return Rect{b.X, b.Y, b.X + w, b.Y + h}
}

// PinAbs returns the absolute (x,y) of a pin instance under the block's
// current position and orientation.
func (b *Block) PinAbs(p *PinTemplate) (float64, float64) {
	dx, dy := p.Offset(b.Orient)
	return b.X + dx, b.Y + dy
}

// IoDirection is the signal direction of an IoPin.
type IoDirection int

const (
	DirInput IoDirection = iota
	DirOutput
	DirInout
)

// IoPin is a primary input/output port. A pre-placed IoPin additionally
// appears as a NetPin reference (not a synthetic Block — see SPEC_FULL.md's
// Open Question decision on the dummy IO-pin CellType) so that net
// traversal does not need to special-case it.
type IoPin struct {
	Name      string
	NetIdx    int // -1 if unassigned
	Dir       IoDirection
	Use       string // signal use, e.g. "SIGNAL", "POWER", "GROUND", "CLOCK"
	Layer     string // optional metal-layer binding; "" if unset
	X, Y      float64
	Status    Status
}

// NetPin is a sum type over {Block pin, IoPin}. Exactly one of BlockIdx or
// IoIdx is set (the other is -1); this keeps circuit.Block free of a
// synthetic "IO dummy" CellType entry (see SPEC_FULL.md's Open Question
// decision).
type NetPin struct {
	BlockIdx int // index into Design.blocks, or -1
	PinTmpl  *PinTemplate
	IoIdx    int // index into Design.ioPins, or -1
}

// IsIoPin reports whether this NetPin refers to an IoPin rather than a
// Block pin.
func (p NetPin) IsIoPin() bool { return p.IoIdx >= 0 }

// AbsCoord resolves the absolute coordinate of this pin instance.
func (p NetPin) AbsCoord(d *Design) (float64, float64) {
	if p.IsIoPin() {
		io := d.ioPins[p.IoIdx]
		return io.X, io.Y
	}
	b := d.blocks[p.BlockIdx]
	return b.PinAbs(p.PinTmpl)
}

// Net is a hyper-edge connecting one or more Block pins and/or IoPins.
// Capacity is a firm upper bound on Pins set at creation (circuit.AddNet);
// InvP is re-derived whenever pins are added or removed (invariant I2).
type Net struct {
	Name     string
	Weight   float64
	Capacity int
	Pins     []NetPin
	InvP     float64 // weight / (P-1), 0 when P <= 1

	// Cached extrema, maintained by boundtracker.Update; -1 until first
	// computed.
	MaxXIdx, MinXIdx int
	MaxYIdx, MinYIdx int
}

// recomputeInvP updates InvP per invariant I2.
func (n *Net) recomputeInvP() {
	p := len(n.Pins)
	if p <= 1 {
		n.InvP = 0
		return
	}
	n.InvP = n.Weight / float64(p-1)
}

// RowSegment is a contiguous horizontal span of a Row available for
// placement. Blocks holds whatever the caller stores in it;
// legalizer.Legalize moves Blocks onto rows but does not fill or update
// this list.
type RowSegment struct {
	LLX, Width float64
	Blocks     []int // indices into Design.blocks
}

// Row is a horizontal placement strip. Orient is N or FS (FS rows are the
// vertical mirror of the row's site pattern).
type Row struct {
	LLY        float64
	Height     float64
	Orient     Orientation // N or FS
	PWellH     float64
	NWellH     float64
	Segments   []RowSegment
}

// PlacementRegion is the immutable rectangle bounding all rows. Width and
// height must be integer multiples of the horizontal placement grid and
// the row height respectively, and every row must fit entirely within it
// (enforced by Circuit.Freeze).
type PlacementRegion struct {
	LLX, LLY, URX, URY float64
}

func (r PlacementRegion) Width() float64  { return r.URX - r.LLX }
func (r PlacementRegion) Height() float64 { return r.URY - r.LLY }
