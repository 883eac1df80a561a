package channel

import (
	"math/rand"
)

// BSC is a binary symmetric channel: every bit is inverted independently
// with crossover probability p (a u<p decision per bit).
type BSC struct {
	p   float64
	rng *rand.Rand
}

func NewBSC(p float64, rng *rand.Rand) *BSC { return &BSC{p: p, rng: rng} }

func (c *BSC) flip() bool {
	if c.p <= 0 {
		return false
	}
	if c.p >= 1 {
		return true
	}
	return c.rng.Float64() < c.p
}

// Apply corrupts bits in place and returns how many were inverted.
func (c *BSC) Apply(bits []byte) int {
	n := 0
	for i := range bits {
		if c.flip() {
			bits[i] ^= 1
			n++
		}
	}
	return n
}
