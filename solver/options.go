package solver

// Documented defaults for the quadratic solver (spec §4.3). Single source
// of truth, mirroring the teacher's matrix package convention of naming
// every tunable as a DefaultX constant next to its WithX option.
const (
	// DefaultEpsilonFraction is the fraction of average block width/height
	// used as the per-axis epsilon that prevents B2B weights from
	// diverging on coincident pins ("on the order of 1%").
	DefaultEpsilonFraction = 0.01

	// DefaultCGPrecision is the absolute residual-squared-per-N threshold
	// at which conjugate gradient stops.
	DefaultCGPrecision = 0.05

	// DefaultCGMaxIter bounds CG iterations per axis solve.
	DefaultCGMaxIter = 200

	// DefaultOuterPrecision is the HPWL relative-change threshold at which
	// the B2B rebuild loop stops (spec §4.3 outer loop).
	DefaultOuterPrecision = 0.05

	// DefaultOuterMaxIter bounds the B2B rebuild loop per axis.
	DefaultOuterMaxIter = 50
)

// config holds the resolved solver tuning parameters.
type config struct {
	epsilonFraction float64
	cgPrecision     float64
	cgMaxIter       int
	outerPrecision  float64
	outerMaxIter    int
}

// Option customizes solver behavior.
type Option func(*config)

func newConfig(opts ...Option) *config {
	cfg := &config{
		epsilonFraction: DefaultEpsilonFraction,
		cgPrecision:     DefaultCGPrecision,
		cgMaxIter:       DefaultCGMaxIter,
		outerPrecision:  DefaultOuterPrecision,
		outerMaxIter:    DefaultOuterMaxIter,
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithEpsilonFraction overrides DefaultEpsilonFraction. Non-positive values
// are ignored.
func WithEpsilonFraction(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.epsilonFraction = f
		}
	}
}

// WithCGPrecision overrides DefaultCGPrecision. Non-positive values are
// ignored.
func WithCGPrecision(p float64) Option {
	return func(c *config) {
		if p > 0 {
			c.cgPrecision = p
		}
	}
}

// WithCGMaxIter overrides DefaultCGMaxIter. Non-positive values are
// ignored.
func WithCGMaxIter(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.cgMaxIter = n
		}
	}
}

// WithOuterPrecision overrides DefaultOuterPrecision. Non-positive values
// are ignored.
func WithOuterPrecision(p float64) Option {
	return func(c *config) {
		if p > 0 {
			c.outerPrecision = p
		}
	}
}

// WithOuterMaxIter overrides DefaultOuterMaxIter. Non-positive values are
// ignored.
func WithOuterMaxIter(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.outerMaxIter = n
		}
	}
}
