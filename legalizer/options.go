package legalizer

// DefaultMaxFlips bounds the number of mirror-and-retry recovery attempts
// (spec §4.5 step 4).
const DefaultMaxFlips = 5

type config struct {
	maxFlips int
}

// Option customizes legalizer behavior.
type Option func(*config)

func newConfig(opts ...Option) *config {
	c := &config{maxFlips: DefaultMaxFlips}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithMaxFlips overrides DefaultMaxFlips. Negative values are ignored.
func WithMaxFlips(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxFlips = n
		}
	}
}
