package spreader

// Documented defaults for the cell spreader (spec §4.4), mirroring the
// teacher's DefaultX-next-to-WithX convention (matrix/options.go).
const (
	// DefaultTargetDensity is the per-bin fill ratio a bin must stay under.
	DefaultTargetDensity = 0.9

	// DefaultBinRowMultiple is how many rows tall one bin is by default.
	DefaultBinRowMultiple = 8

	// DefaultMaxPasses bounds the bin-state/cluster/bipartition cycle.
	DefaultMaxPasses = 20

	// DefaultWhiteSpaceDominanceFraction is the "≤1% of white space"
	// threshold below which a sub-box absorbs all cells of its parent
	// rather than being cell-partitioned.
	DefaultWhiteSpaceDominanceFraction = 0.01

	// DefaultBisectionIterations bounds the cell-partition line search.
	DefaultBisectionIterations = 20
)

// config holds the resolved spreader tuning parameters.
type config struct {
	targetDensity          float64
	binRowMultiple         int
	maxPasses              int
	dominanceFraction      float64
	bisectionIterations    int
}

// Option customizes spreader behavior.
type Option func(*config)

func newConfig(opts ...Option) *config {
	c := &config{
		targetDensity:       DefaultTargetDensity,
		binRowMultiple:      DefaultBinRowMultiple,
		maxPasses:           DefaultMaxPasses,
		dominanceFraction:   DefaultWhiteSpaceDominanceFraction,
		bisectionIterations: DefaultBisectionIterations,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTargetDensity overrides DefaultTargetDensity. Values outside (0,1]
// are ignored.
func WithTargetDensity(d float64) Option {
	return func(c *config) {
		if d > 0 && d <= 1 {
			c.targetDensity = d
		}
	}
}

// WithBinRowMultiple overrides DefaultBinRowMultiple. Non-positive values
// are ignored.
func WithBinRowMultiple(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.binRowMultiple = n
		}
	}
}

// WithMaxPasses overrides DefaultMaxPasses. Non-positive values are
// ignored.
func WithMaxPasses(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

// WithBisectionIterations overrides DefaultBisectionIterations.
// Non-positive values are ignored.
func WithBisectionIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bisectionIterations = n
		}
	}
}
