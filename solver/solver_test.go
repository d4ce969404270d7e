package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dali-eda/dali/boundtracker"
	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/solver"
)

// SolverSuite exercises the B2B quadratic solve against small, hand-checked
// circuits (mirroring the teacher's richer numeric-scenario suites, e.g.
// flow/ford_fulkerson_test.go's use of testify/suite).
type SolverSuite struct {
	suite.Suite
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

// buildChain builds a 3-block chain net0(b0-b1), net1(b1-b2), with b0 and b2
// fixed far apart and b1 free to move; the quadratic optimum for b1 is the
// midpoint between the two fixed pins on each axis.
func (s *SolverSuite) buildChain() *circuit.Circuit {
	c := circuit.NewCircuit(1, 1)
	ct, err := c.Tech.AddBlockType("CELL", 2, 2)
	s.Require().NoError(err)
	pin, err := c.Tech.AddPinToType(ct, "P", true)
	s.Require().NoError(err)
	s.Require().NoError(c.Tech.AddPinRect(pin, 1, 1, 1, 1))

	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 100, URY: 100})
	c.Tech.FreezePins()

	_, err = c.Design.AddBlock("b0", ct, 0, 50, circuit.Fixed, circuit.N)
	s.Require().NoError(err)
	_, err = c.Design.AddBlock("b1", ct, 50, 50, circuit.Placed, circuit.N)
	s.Require().NoError(err)
	_, err = c.Design.AddBlock("b2", ct, 100, 50, circuit.Fixed, circuit.N)
	s.Require().NoError(err)

	n0, err := c.Design.AddNet("n0", 2, 1.0)
	s.Require().NoError(err)
	s.Require().NoError(c.Design.AddBlkPinToNet(n0, "b0", "P"))
	s.Require().NoError(c.Design.AddBlkPinToNet(n0, "b1", "P"))

	n1, err := c.Design.AddNet("n1", 2, 1.0)
	s.Require().NoError(err)
	s.Require().NoError(c.Design.AddBlkPinToNet(n1, "b1", "P"))
	s.Require().NoError(c.Design.AddBlkPinToNet(n1, "b2", "P"))

	return c
}

func (s *SolverSuite) TestUnanchoredConvergesTowardMidpoint() {
	c := s.buildChain()
	res := solver.RunToConvergence(c, nil, nil, 0, solver.WithOuterMaxIter(10))

	b1, ok := c.Design.BlockByName("b1")
	s.Require().True(ok)
	block := c.Design.Blocks()[b1]

	s.InDelta(50.0, block.X, 5.0, "b1 should settle near the midpoint of its two fixed neighbors")
	s.False(res.HPWLx < 0)
}

func (s *SolverSuite) TestTotalHPWLFiniteAndNonNegative() {
	c := s.buildChain()
	solver.RunToConvergence(c, nil, nil, 0, solver.WithOuterMaxIter(5))

	total := boundtracker.TotalHPWL(c.Design, boundtracker.PinToPin)
	s.GreaterOrEqual(total, 0.0)
}

func (s *SolverSuite) TestAnchorPullBiasesTowardAnchor() {
	c := s.buildChain()
	blocks := c.Design.Blocks()
	anchorsX := make([]float64, len(blocks))
	anchorsY := make([]float64, len(blocks))
	for i, b := range blocks {
		anchorsX[i] = b.X
		anchorsY[i] = b.Y
	}
	bi, _ := c.Design.BlockByName("b1")
	anchorsX[bi] = 10 // pull hard toward the left fixed neighbor's side

	res := solver.RunToConvergence(c, anchorsX, anchorsY, 50.0, solver.WithOuterMaxIter(10))
	block := blocks[bi]

	s.Less(block.X, 50.0,"a strong anchor pull toward x=10 should move b1 left of the unanchored midpoint")
	s.GreaterOrEqual(res.HPWLx, 0.0)
}

// TestSingleMovableBlockNoNets exercises the one-variable, zero-net edge
// case: RunToConvergence must not panic or divide by zero.
func TestSingleMovableBlockNoNets(t *testing.T) {
	c := circuit.NewCircuit(1, 1)
	ct, err := c.Tech.AddBlockType("CELL", 2, 2)
	require.NoError(t, err)
	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 10, URY: 10})
	c.Tech.FreezePins()
	_, err = c.Design.AddBlock("b0", ct, 2, 2, circuit.Placed, circuit.N)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		solver.RunToConvergence(c, nil, nil, 0, solver.WithOuterMaxIter(3))
	})
}
