package channel

import "math"

// BPSKBitErrorRate is the uncoded BPSK bit error rate 0.5*erfc(sqrt(Eb/N0)).
func BPSKBitErrorRate(ebn0DB float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(math.Pow(10, ebn0DB/10)))
}

// BlockErrorRate is the probability that at least one of n independent
// bits is wrong.
func BlockErrorRate(ber float64, n int) float64 {
	return 1 - math.Pow(1-ber, float64(n))
}
