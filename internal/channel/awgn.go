package channel

import (
	"math"
	"math/rand"
)

// AWGN is a BPSK modulator followed by additive white Gaussian noise.
// Bit 0 maps to +1 and bit 1 to -1.
type AWGN struct {
	sigma float64
	rng   *rand.Rand
}

// NoiseVariance returns sigma^2 = 1 / (2 * rate * Eb/N0) for Eb/N0 in dB.
func NoiseVariance(ebn0DB, rate float64) float64 {
	return 1 / (2 * rate * math.Pow(10, ebn0DB/10))
}

// NewAWGN returns a channel for the given Eb/N0 (dB) and code rate.
func NewAWGN(ebn0DB, rate float64, rng *rand.Rand) *AWGN {
	return &AWGN{sigma: math.Sqrt(NoiseVariance(ebn0DB, rate)), rng: rng}
}

// Variance returns sigma^2.
func (a *AWGN) Variance() float64 { return a.sigma * a.sigma }

// Transmit writes the noisy BPSK samples of bits into y.
func (a *AWGN) Transmit(bits []byte, y []float64) {
	for i, b := range bits {
		s := 1.0
		if b&1 == 1 {
			s = -1
		}
		y[i] = s + a.sigma*a.rng.NormFloat64()
	}
}

// LLR writes 2y/sigma^2 for every sample; positive favours bit 0.
func (a *AWGN) LLR(y, llr []float64) {
	k := 2 / a.Variance()
	for i, v := range y {
		llr[i] = k * v
	}
}

// Slice writes hard decisions (y < 0 means 1).
func Slice(y []float64, bits []byte) {
	for i, v := range y {
		if v < 0 {
			bits[i] = 1
		} else {
			bits[i] = 0
		}
	}
}
