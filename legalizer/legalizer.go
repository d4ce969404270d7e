// Package legalizer implements the row-and-site Tetris detailed legalizer
// (spec §4.5), recovered from original_source's LGTetris.cc: a
// left-to-right scan per row with fast-shift-and-mirror failure recovery
// bounded by a flip budget.
package legalizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/dali-eda/dali/circuit"
)

type rowObstacles struct {
	lly, ury float64
	spans    []circuit.Rect // fixed/cover obstacles overlapping this row, sorted by LLX
}

func buildRowObstacles(c *circuit.Circuit) []rowObstacles {
	rows := make([]rowObstacles, len(c.Rows))
	for i, row := range c.Rows {
		rows[i] = rowObstacles{lly: row.LLY, ury: row.LLY + row.Height}
	}
	for _, b := range c.Design.Blocks() {
		if b.Status.Movable() {
			continue
		}
		r := b.Rect()
		for i := range rows {
			if r.URY > rows[i].lly && r.LLY < rows[i].ury {
				rows[i].spans = append(rows[i].spans, r)
			}
		}
	}
	for i := range rows {
		sort.Slice(rows[i].spans, func(a, b int) bool { return rows[i].spans[a].LLX < rows[i].spans[b].LLX })
	}
	return rows
}

func nearestRowIndex(c *circuit.Circuit, y float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, row := range c.Rows {
		d := math.Abs(row.LLY - y)
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return best
}

func snapToGrid(x, grid float64) float64 {
	if grid <= 0 {
		return x
	}
	return math.Ceil(x/grid-1e-9) * grid
}

// tryPlace scans rightward from startX for the first x such that
// [x, x+width) does not overlap any obstacle in any of the given rows and
// the block still fits within the region, returning the committed x.
func tryPlace(c *circuit.Circuit, rows []rowObstacles, rowIdxs []int, width, startX float64, grid float64) (float64, bool) {
	x := snapToGrid(startX, grid)
	for {
		if x+width > c.Region.URX+1e-9 {
			return 0, false
		}
		blocked := false
		for _, ri := range rowIdxs {
			for _, obs := range rows[ri].spans {
				if x < obs.URX-1e-9 && obs.LLX < x+width-1e-9 {
					next := snapToGrid(obs.URX, grid)
					if next > x {
						x = next
					} else {
						x += grid
						if grid <= 0 {
							x = obs.URX
						}
					}
					blocked = true
				}
			}
		}
		if !blocked {
			return x, true
		}
	}
}

// pass runs one full left-to-right legalization sweep over every movable
// Block, sorted by current (llx,lly). It returns the sorted block-index
// order used and the position within it of the first Block that could not
// be placed (-1 if the pass succeeded).
func pass(c *circuit.Circuit, rowHeight float64, grid float64) (order []int, failedAt int) {
	rows := buildRowObstacles(c)
	nextX := make([]float64, len(rows))
	for i := range nextX {
		nextX[i] = c.Region.LLX
		for _, obs := range rows[i].spans {
			if obs.LLX <= nextX[i]+1e-9 && obs.URX > nextX[i] {
				nextX[i] = obs.URX
			}
		}
	}

	for i, b := range c.Design.Blocks() {
		if b.Status.Movable() {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		ba, bb := c.Design.Blocks()[order[a]], c.Design.Blocks()[order[b]]
		if ba.X != bb.X {
			return ba.X < bb.X
		}
		return ba.Y < bb.Y
	})

	for pos, bi := range order {
		blk := c.Design.Blocks()[bi]
		width := blk.Width()
		height := blk.Rect().Height()
		rowIdx := nearestRowIndex(c, blk.Y)
		span := int(math.Max(1, math.Round(height/rowHeight)))
		var covered []int
		for r := rowIdx; r < rowIdx+span && r < len(rows); r++ {
			covered = append(covered, r)
		}
		if len(covered) == 0 {
			return order, pos
		}

		start := snapToGrid(blk.X, grid)
		for _, ri := range covered {
			if nextX[ri] > start {
				start = nextX[ri]
			}
		}

		x, ok := tryPlace(c, rows, covered, width, start, grid)
		if !ok {
			return order, pos
		}

		blk.X = x
		blk.Y = rows[covered[0]].lly
		for _, ri := range covered {
			if x+width > nextX[ri] {
				nextX[ri] = x + width
			}
		}
	}
	return order, -1
}

// fastShift implements the recovery shift of spec §4.5 step 4: when the
// very first attempted Block fails, the whole remaining set is
// bounding-box-shifted to the region's left edge; otherwise the blocks
// from the failure point on are shifted by the gap between the last
// committed Block's right edge and the first failing Block's current
// position (LGTetris.cc's FastShift).
func fastShift(c *circuit.Circuit, order []int, failedAt int) {
	if failedAt == 0 {
		minX := math.Inf(1)
		for _, bi := range order {
			if x := c.Design.Blocks()[bi].X; x < minX {
				minX = x
			}
		}
		shift := c.Region.LLX - minX
		for _, bi := range order {
			c.Design.Blocks()[bi].X += shift
		}
		return
	}
	last := c.Design.Blocks()[order[failedAt-1]]
	anchor := last.X + last.Width()
	first := c.Design.Blocks()[order[failedAt]]
	shift := anchor - first.X
	for _, bi := range order[failedAt:] {
		c.Design.Blocks()[bi].X += shift
	}
}

// flipPlacement mirrors every movable Block's X across the region's
// vertical centerline: flipped_llx = left + right - urx (LGTetris.cc's
// FlipPlacement formula).
func flipPlacement(c *circuit.Circuit) {
	sum := c.Region.LLX + c.Region.URX
	for _, b := range c.Design.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		b.X = sum - (b.X + b.Width())
	}
}

// Legalize runs the Tetris detailed legalizer to completion, mutating
// every movable Block's (X,Y) in place. It returns ErrLegalization if no
// legal placement is found within the configured flip budget.
func Legalize(c *circuit.Circuit, opts ...Option) error {
	cfg := newConfig(opts...)
	rowHeight := 1.0
	if len(c.Rows) > 0 {
		rowHeight = c.Rows[0].Height
	}
	grid := c.Tech.GridX

	flips := 0
	for {
		order, failedAt := pass(c, rowHeight, grid)
		if failedAt < 0 {
			if flips%2 == 1 {
				flipPlacement(c)
			}
			return nil
		}
		if flips >= cfg.maxFlips {
			return fmt.Errorf("legalizer: Legalize: %w", ErrLegalization)
		}
		fastShift(c, order, failedAt)
		flipPlacement(c)
		flips++
	}
}
