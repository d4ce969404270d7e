package placer

import (
	"math/rand"

	"github.com/dali-eda/dali/circuit"
)

// RandomInitialize places every movable Block uniformly within c.Region
// (spec §4.6 step 1), using a seeded PRNG so a run is reproducible given
// the same seed (property P6). Ported from original_source's
// random_initializer.{h,cc}.
func RandomInitialize(c *circuit.Circuit, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for _, b := range c.Design.Blocks() {
		if !b.Status.Movable() {
			continue
		}
		w := b.Width()
		h := b.Rect().Height()
		maxX := c.Region.URX - w
		maxY := c.Region.URY - h
		if maxX < c.Region.LLX {
			maxX = c.Region.LLX
		}
		if maxY < c.Region.LLY {
			maxY = c.Region.LLY
		}
		b.X = c.Region.LLX + rng.Float64()*(maxX-c.Region.LLX)
		b.Y = c.Region.LLY + rng.Float64()*(maxY-c.Region.LLY)
	}
}
