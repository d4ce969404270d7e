package spreader_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dali-eda/dali/circuit"
	"github.com/dali-eda/dali/spreader"
)

type SpreaderSuite struct {
	suite.Suite
}

func TestSpreaderSuite(t *testing.T) {
	suite.Run(t, new(SpreaderSuite))
}

// buildMesh packs n*n identical cells tightly into the lower-left corner
// of an oversized region, well past the density target of a 2-row bin, so
// a spread pass has real work to do (mirrors scenario T2's 4x4 mesh setup,
// minus the nets since the spreader only looks at positions/areas). It
// also registers a 16x16 MACRO cell type before the pins are frozen.
func (s *SpreaderSuite) buildMesh(n int, region circuit.PlacementRegion) *circuit.Circuit {
	c := circuit.NewCircuit(0.1, 0.1)
	ct, err := c.Tech.AddBlockType("CELL", 1, 2)
	s.Require().NoError(err)
	_, err = c.Tech.AddBlockType("MACRO", 16, 16)
	s.Require().NoError(err)
	c.SetRegion(region)
	c.BuildUniformRows(2, 0, 0)
	c.Tech.FreezePins()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			name := blockName(i, j)
			_, err := c.Design.AddBlock(name, ct, 0, 0, circuit.Placed, circuit.N)
			s.Require().NoError(err)
		}
	}
	return c
}

func blockName(i, j int) string {
	return string(rune('A'+i)) + string(rune('a'+j))
}

func (s *SpreaderSuite) TestSpreadReducesOverfilledClusters() {
	c := s.buildMesh(4, circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 40, URY: 40})
	g := spreader.Spread(c, spreader.WithMaxPasses(10), spreader.WithBinRowMultiple(2))
	s.Require().NotNil(g)

	clusters := spreader.FindClusters(g, 0.9)
	s.Empty(clusters, "no bin should remain overfilled after spreading converges")
}

func (s *SpreaderSuite) TestSpreadKeepsCellsWithinRegion() {
	region := circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 40, URY: 40}
	c := s.buildMesh(4, region)
	spreader.Spread(c, spreader.WithMaxPasses(10), spreader.WithBinRowMultiple(2))

	for _, b := range c.Design.Blocks() {
		r := b.Rect()
		s.GreaterOrEqual(r.LLX, region.LLX-1e-6)
		s.LessOrEqual(r.URX, region.URX+1e-6)
	}
}

func (s *SpreaderSuite) TestSpreadAvoidsFixedMacro() {
	region := circuit.PlacementRegion{LLX: 0, LLY: 0, URX: 40, URY: 40}
	c := s.buildMesh(4, region)

	macroCt, ok := c.Tech.CellTypeByName("MACRO")
	s.Require().True(ok)
	_, err := c.Design.AddBlock("macro0", macroCt, 12, 12, circuit.Fixed, circuit.N)
	s.Require().NoError(err)

	spreader.Spread(c, spreader.WithMaxPasses(10), spreader.WithBinRowMultiple(2))

	macroIdx, ok := c.Design.BlockByName("macro0")
	require.True(s.T(), ok)
	macroRect := c.Design.Blocks()[macroIdx].Rect()

	for _, b := range c.Design.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		s.False(b.Rect().Overlaps(macroRect), "movable cell %s overlaps the fixed macro", b.Name)
	}
}
