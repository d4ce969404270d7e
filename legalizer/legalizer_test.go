package legalizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/legalizer"
)

type LegalizerSuite struct {
	suite.Suite
}

func TestLegalizerSuite(t *testing.T) {
	suite.Run(t, new(LegalizerSuite))
}

func (s *LegalizerSuite) buildRow(n int, cellWidth float64) *circuit.Circuit {
	c := circuit.NewCircuit(1, 1)
	ct, err := c.Tech.AddBlockType("CELL", cellWidth, 2)
	s.Require().NoError(err)
	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: float64(n) * cellWidth, URY: 2})
	c.BuildUniformRows(2, 0, 0)
	c.Tech.FreezePins()

	for i := 0; i < n; i++ {
		name := string(rune('a' + i))
		_, err := c.Design.AddBlock(name, ct, 0, 0, circuit.Placed, circuit.N)
		s.Require().NoError(err)
	}
	return c
}

// TestExactFitLegalizes packs exactly n cells into a region exactly n
// cells wide: every cell must land on the single row with no overlaps.
func (s *LegalizerSuite) TestExactFitLegalizes() {
	c := s.buildRow(4, 2)
	for i, b := range c.Design.Blocks() {
		b.X = float64(i) * 2.1 // slightly jittered starting positions
	}

	err := legalizer.Legalize(c)
	s.Require().NoError(err)

	blocks := c.Design.Blocks()
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			s.False(blocks[i].Rect().Overlaps(blocks[j].Rect()), "%s overlaps %s", blocks[i].Name, blocks[j].Name)
		}
		s.Equal(0.0, blocks[i].Y)
	}
}

// TestOverflowFailsWithErrLegalization packs one more cell than the row
// can hold; Legalize must exhaust its flip budget and report
// ErrLegalization.
func (s *LegalizerSuite) TestOverflowFailsWithErrLegalization() {
	c := s.buildRow(4, 2)
	// add a fifth cell with nowhere to legally go
	ct, _ := c.Tech.CellTypeByName("CELL")
	_, err := c.Design.AddBlock("extra", ct, 0, 0, circuit.Placed, circuit.N)
	s.Require().NoError(err)

	err = legalizer.Legalize(c, legalizer.WithMaxFlips(2))
	require.ErrorIs(s.T(), err, legalizer.ErrLegalization)
}

func TestFixedObstacleIsRespected(t *testing.T) {
	c := circuit.NewCircuit(1, 1)
	cellCt, err := c.Tech.AddBlockType("CELL", 2, 2)
	require.NoError(t, err)
	macroCt, err := c.Tech.AddBlockType("MACRO", 2, 2)
	require.NoError(t, err)
	c.SetRegion(circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 10, URY: 2})
	c.BuildUniformRows(2, 0, 0)
	c.Tech.FreezePins()

	_, err = c.Design.AddBlock("m0", macroCt, 2, 0, circuit.Fixed, circuit.N)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		name := string(rune('a' + i))
		_, err := c.Design.AddBlock(name, cellCt, 0, 0, circuit.Placed, circuit.N)
		require.NoError(t, err)
	}

	err = legalizer.Legalize(c)
	require.NoError(t, err)

	macroIdx, _ := c.Design.BlockByName("m0")
	macroRect := c.Design.Blocks()[macroIdx].Rect()
	for _, b := range c.Design.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		require.False(t, b.Rect().Overlaps(macroRect), "%s overlaps fixed macro", b.Name)
	}
}
