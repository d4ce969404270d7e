package placer

import (
	"github.com/dali-eda/dali/legalizer"
	"github.com/dali-eda/dali/solver"
	"github.com/dali-eda/dali/spreader"
)

// Documented defaults for the Global-Placement Driver (spec §4.6),
// mirroring the teacher's DefaultX-next-to-WithX convention.
const (
	// DefaultSeed seeds the random initializer when no seed is supplied.
	DefaultSeed = 1

	// DefaultRho is the lb/ub HPWL relative-gap convergence threshold.
	DefaultRho = 0.02

	// DefaultMaxIter bounds the outer solve/spread/anchor loop.
	DefaultMaxIter = 50

	// DefaultAlphaInit is the anchor-pull weight at the first anchored
	// resolve (t=0); it grows as alpha * (1+t) each iteration.
	DefaultAlphaInit = 0.01
)

type config struct {
	seed       int64
	rho        float64
	maxIter    int
	alphaInit  float64
	solverOpts []solver.Option
	spreadOpts []spreader.Option
	legalOpts  []legalizer.Option
}

// Option customizes the placement driver.
type Option func(*config)

func newConfig(opts ...Option) *config {
	c := &config{
		seed:      DefaultSeed,
		rho:       DefaultRho,
		maxIter:   DefaultMaxIter,
		alphaInit: DefaultAlphaInit,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithSeed sets the PRNG seed used by the random initializer (mirrors
// builder.WithSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithRho overrides DefaultRho. Non-positive values are ignored.
func WithRho(rho float64) Option {
	return func(c *config) {
		if rho > 0 {
			c.rho = rho
		}
	}
}

// WithMaxIter overrides DefaultMaxIter. Non-positive values are ignored.
func WithMaxIter(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithAlphaInit overrides DefaultAlphaInit. Non-positive values are
// ignored.
func WithAlphaInit(a float64) Option {
	return func(c *config) {
		if a > 0 {
			c.alphaInit = a
		}
	}
}

// WithSolverOptions forwards options to every solver.RunToConvergence
// call made by the driver.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(c *config) { c.solverOpts = opts }
}

// WithSpreaderOptions forwards options to every spreader.Spread call made
// by the driver.
func WithSpreaderOptions(opts ...spreader.Option) Option {
	return func(c *config) { c.spreadOpts = opts }
}

// WithLegalizerOptions forwards options to the final legalizer.Legalize
// call.
func WithLegalizerOptions(opts ...legalizer.Option) Option {
	return func(c *config) { c.legalOpts = opts }
}
