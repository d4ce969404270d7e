package phydb

import "fmt"

// Fake is an in-memory ConsumerView/ProducerView used only by tests (this
// package's own and its callers'); it never parses LEF/DEF/Bookshelf.
type Fake struct {
	DBMicrons    float64
	MfgGrid      float64
	LayerList    []Layer
	MacroList    []Macro
	ComponentList []Component
	IoPinList    []ExternalIoPin
	NetList      []ExternalNet
	Die          DieArea
	DefUnits     int64
	Well         *WellLayerParams

	placedComponents map[string]Component
	placedIoPins     map[string]ExternalIoPin
}

// NewFake returns an empty Fake ready to have its fields populated.
func NewFake() *Fake {
	return &Fake{
		placedComponents: make(map[string]Component),
		placedIoPins:     make(map[string]ExternalIoPin),
	}
}

func (f *Fake) DatabaseMicrons() float64    { return f.DBMicrons }
func (f *Fake) ManufacturingGrid() float64  { return f.MfgGrid }
func (f *Fake) Layers() []Layer             { return f.LayerList }
func (f *Fake) Macros() []Macro             { return f.MacroList }
func (f *Fake) Components() []Component     { return f.ComponentList }
func (f *Fake) IoPins() []ExternalIoPin     { return f.IoPinList }
func (f *Fake) Nets() []ExternalNet         { return f.NetList }
func (f *Fake) DieArea() DieArea            { return f.Die }
func (f *Fake) DefDistanceMicrons() int64   { return f.DefUnits }

func (f *Fake) WellParams() (WellLayerParams, bool) {
	if f.Well == nil {
		return WellLayerParams{}, false
	}
	return *f.Well, true
}

// SetComponentPlacement records a component's final placement, matching
// ProducerView.
func (f *Fake) SetComponentPlacement(name string, x, y int64, orient string, status PlacementStatus) error {
	found := false
	for _, c := range f.ComponentList {
		if c.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("phydb: SetComponentPlacement(%q): unknown component", name)
	}
	f.placedComponents[name] = Component{Name: name, X: x, Y: y, Orient: orient, Status: status}
	return nil
}

// SetIoPinPlacement records an IO pin's final placement, matching
// ProducerView.
func (f *Fake) SetIoPinPlacement(name string, x, y int64, status PlacementStatus) error {
	found := false
	for _, p := range f.IoPinList {
		if p.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("phydb: SetIoPinPlacement(%q): unknown io pin", name)
	}
	f.placedIoPins[name] = ExternalIoPin{Name: name, HasCoord: true, X: x, Y: y, Status: status}
	return nil
}

// PlacedComponent returns the recorded output for a component, if any.
func (f *Fake) PlacedComponent(name string) (Component, bool) {
	c, ok := f.placedComponents[name]
	return c, ok
}

// PlacedIoPin returns the recorded output for an IO pin, if any.
func (f *Fake) PlacedIoPin(name string) (ExternalIoPin, bool) {
	p, ok := f.placedIoPins[name]
	return p, ok
}

var (
	_ ConsumerView = (*Fake)(nil)
	_ ProducerView = (*Fake)(nil)
)
