package circuit

import "fmt"

// Design owns Blocks, IoPins and Nets for one circuit instance. Names are
// unique within their own category. Once the first Net is created, no more
// Blocks or IoPins may be added (ErrOrdering) — Nets cache integer indices
// into the Block/IoPin arenas and those indices must stay valid for the
// lifetime of the Design.
type Design struct {
	tech *Tech

	blocks     []*Block
	blockIndex map[string]int

	ioPins     []*IoPin
	ioIndex    map[string]int

	nets      []*Net
	netIndex  map[string]int

	netsStarted bool // true once the first net is created
}

// NewDesign returns an empty Design bound to the given Tech catalog.
func NewDesign(tech *Tech) *Design {
	return &Design{
		tech:       tech,
		blockIndex: make(map[string]int),
		ioIndex:    make(map[string]int),
		netIndex:   make(map[string]int),
	}
}

// Blocks returns the block arena in insertion order.
func (d *Design) Blocks() []*Block { return d.blocks }

// IoPins returns the IO pin arena in insertion order.
func (d *Design) IoPins() []*IoPin { return d.ioPins }

// Nets returns the net arena in insertion order.
func (d *Design) Nets() []*Net { return d.nets }

// BlockByName looks up a Block index by name.
func (d *Design) BlockByName(name string) (int, bool) {
	i, ok := d.blockIndex[name]
	return i, ok
}

// IoPinByName looks up an IoPin index by name.
func (d *Design) IoPinByName(name string) (int, bool) {
	i, ok := d.ioIndex[name]
	return i, ok
}

// AddBlock inserts a new Block instance of the given CellType.
func (d *Design) AddBlock(name string, ct *CellType, llx, lly float64, status Status, orient Orientation) (*Block, error) {
	if d.netsStarted {
		return nil, fmt.Errorf("circuit: AddBlock(%q): %w", name, ErrOrdering)
	}
	if _, exists := d.blockIndex[name]; exists {
		return nil, fmt.Errorf("circuit: AddBlock(%q): %w", name, ErrNameCollision)
	}
	if ct == nil {
		return nil, fmt.Errorf("circuit: AddBlock(%q): %w", name, ErrMissingReference)
	}
	b := &Block{Name: name, Type: ct, X: llx, Y: lly, Status: status, Orient: orient}
	d.blockIndex[name] = len(d.blocks)
	d.blocks = append(d.blocks, b)
	return b, nil
}

// AddIoPin inserts a new primary IO pin.
func (d *Design) AddIoPin(name string, dir IoDirection, use string) (*IoPin, error) {
	if d.netsStarted {
		return nil, fmt.Errorf("circuit: AddIoPin(%q): %w", name, ErrOrdering)
	}
	if _, exists := d.ioIndex[name]; exists {
		return nil, fmt.Errorf("circuit: AddIoPin(%q): %w", name, ErrNameCollision)
	}
	io := &IoPin{Name: name, NetIdx: -1, Dir: dir, Use: use, Status: Unplaced}
	d.ioIndex[name] = len(d.ioPins)
	d.ioPins = append(d.ioPins, io)
	return io, nil
}

// AddNet creates a new Net with a firm pin capacity. Once any Net exists,
// AddBlock/AddIoPin fail with ErrOrdering.
func (d *Design) AddNet(name string, capacity int, weight float64) (*Net, error) {
	if _, exists := d.netIndex[name]; exists {
		return nil, fmt.Errorf("circuit: AddNet(%q): %w", name, ErrNameCollision)
	}
	n := &Net{Name: name, Weight: weight, Capacity: capacity, MaxXIdx: -1, MinXIdx: -1, MaxYIdx: -1, MinYIdx: -1}
	d.netIndex[name] = len(d.nets)
	d.nets = append(d.nets, n)
	d.netsStarted = true
	return n, nil
}

// NetByName looks up a Net index by name.
func (d *Design) NetByName(name string) (int, bool) {
	i, ok := d.netIndex[name]
	return i, ok
}

// AddBlkPinToNet inserts a (Block,PinTemplate) reference into n, updating
// the Block's incident-net list and n's InvP (invariant I1, I2).
func (d *Design) AddBlkPinToNet(n *Net, blockName, pinName string) error {
	bi, ok := d.blockIndex[blockName]
	if !ok {
		return fmt.Errorf("circuit: AddBlkPinToNet(%q,%q): %w", blockName, pinName, ErrMissingReference)
	}
	b := d.blocks[bi]
	pt, ok := b.Type.PinByName(pinName)
	if !ok {
		return fmt.Errorf("circuit: AddBlkPinToNet(%q,%q): %w", blockName, pinName, ErrMissingReference)
	}
	if len(n.Pins) >= n.Capacity {
		return fmt.Errorf("circuit: AddBlkPinToNet(%q,%q): %w", blockName, pinName, ErrCapacity)
	}
	ni, _ := d.netIndex[n.Name]
	n.Pins = append(n.Pins, NetPin{BlockIdx: bi, PinTmpl: pt, IoIdx: -1})
	b.Nets = append(b.Nets, ni)
	n.recomputeInvP()
	return nil
}

// AddIoPinToNet inserts an IoPin reference into n.
func (d *Design) AddIoPinToNet(n *Net, ioName string) error {
	ii, ok := d.ioIndex[ioName]
	if !ok {
		return fmt.Errorf("circuit: AddIoPinToNet(%q): %w", ioName, ErrMissingReference)
	}
	if len(n.Pins) >= n.Capacity {
		return fmt.Errorf("circuit: AddIoPinToNet(%q): %w", ioName, ErrCapacity)
	}
	ni, _ := d.netIndex[n.Name]
	n.Pins = append(n.Pins, NetPin{BlockIdx: -1, IoIdx: ii})
	d.ioPins[ii].NetIdx = ni
	n.recomputeInvP()
	return nil
}
