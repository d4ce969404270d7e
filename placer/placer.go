// Package placer orchestrates the Global-Placement Driver (spec §4.6):
// random initialization, the quadratic-solver/cell-spreader alternation
// with a monotone anchor schedule, and the final handoff to the detailed
// legalizer. It is the single public entry point mirroring the teacher's
// builder.Build orchestration shape (functional options, one Run call,
// seeded RNG).
package placer

import (
	"math"

	"github.com/dali-eda/dali/boundtracker"
	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/legalizer"
	"github.com/dali-eda/dali/solver"
	"github.com/dali-eda/dali/spreader"
)

// Result summarizes one Run.
type Result struct {
	Iterations int
	HPWLLowerBound float64
	HPWLUpperBound float64
	FinalHPWL      float64
}

// Run executes the full placement pipeline over c, mutating Block
// positions in place, and returns once the detailed
// legalizer has produced a legal placement or failed.
func Run(c *circuit.Circuit, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)

	RandomInitialize(c, cfg.seed)

	res := solver.RunToConvergence(c, nil, nil, 0, cfg.solverOpts...)
	hpwlLB := res.HPWLx + res.HPWLy

	hpwlUB := hpwlLB
	iter := 0
	for ; iter < cfg.maxIter; iter++ {
		spreader.Spread(c, cfg.spreadOpts...)
		hpwlUB = boundtracker.TotalHPWL(c.Design, boundtracker.PinToPin)

		if hpwlLB > 0 && math.Abs(hpwlLB-hpwlUB)/hpwlLB <= cfg.rho {
			break
		}

		blocks := c.Design.Blocks()
		anchorsX := make([]float64, len(blocks))
		anchorsY := make([]float64, len(blocks))
		for i, b := range blocks {
			anchorsX[i] = b.X
			anchorsY[i] = b.Y
		}
		alpha := cfg.alphaInit * (1 + float64(iter))
		res = solver.RunToConvergence(c, anchorsX, anchorsY, alpha, cfg.solverOpts...)
		hpwlLB = res.HPWLx + res.HPWLy
	}

	if err := legalizer.Legalize(c, cfg.legalOpts...); err != nil {
		return Result{Iterations: iter, HPWLLowerBound: hpwlLB, HPWLUpperBound: hpwlUB}, err
	}

	final := boundtracker.TotalHPWL(c.Design, boundtracker.PinToPin)
	return Result{Iterations: iter, HPWLLowerBound: hpwlLB, HPWLUpperBound: hpwlUB, FinalHPWL: final}, nil
}
