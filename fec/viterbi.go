package fec

import "fmt"

// NSCResult is the outcome of a Viterbi decode.
type NSCResult struct {
	Info       []byte // K decoded information bits
	Codeword   []byte // re-encoded frame, only with WithReencode
	FinalState State  // state the traceback started from
	PathMetric float64
}

// pathMetric is the arithmetic a Viterbi variant accumulates branch costs in.
type pathMetric interface {
	~int | ~float64
}

// metricBounds separates reachable metrics from the "not reached" sentinel.
type metricBounds[M pathMetric] struct {
	sentinel    M // initial cost of unreachable states
	unreachable M // costs at or above this are skipped
}

var (
	softBounds = metricBounds[float64]{sentinel: 1e30, unreachable: 1e29}
	hardBounds = metricBounds[int]{sentinel: 1_000_000_000, unreachable: 100_000_000}
)

// softBranch is the negative correlation between the BPSK image of the
// branch output (0 -> +1, 1 -> -1) and the symbol's two LLRs.
func softBranch(llr []float64) func(int, [2]uint8) float64 {
	return func(i int, out [2]uint8) float64 {
		s0, s1 := 1.0, 1.0
		if out[0] != 0 {
			s0 = -1
		}
		if out[1] != 0 {
			s1 = -1
		}
		return -(s0*llr[2*i] + s1*llr[2*i+1])
	}
}

// hardBranch is the Hamming distance between the branch output and the two
// received bits of the symbol.
func hardBranch(rx []byte) func(int, [2]uint8) int {
	return func(i int, out [2]uint8) int {
		d := 0
		if rx[2*i]&1 != out[0] {
			d++
		}
		if rx[2*i+1]&1 != out[1] {
			d++
		}
		return d
	}
}

// DecodeSoft runs the soft-decision Viterbi decoder over 2*(K+2) LLRs
// (positive means bit 0 is more likely).
func (c *NSCCodec) DecodeSoft(llr []float64) (*NSCResult, error) {
	if len(llr) != c.CodeLen() {
		return nil, fmt.Errorf("%w: got %d LLRs, want %d", ErrCodeLength, len(llr), c.CodeLen())
	}
	res, err := decodeViterbi(c, softBounds, softBranch(llr))
	if err != nil {
		return nil, err
	}
	c.opts.metrics.observeNSC("soft", res.FinalState)
	return res, nil
}

// DecodeHard runs the hard-decision Viterbi decoder over 2*(K+2) received
// bits.
func (c *NSCCodec) DecodeHard(rx []byte) (*NSCResult, error) {
	if len(rx) != c.CodeLen() {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrCodeLength, len(rx), c.CodeLen())
	}
	res, err := decodeViterbi(c, hardBounds, hardBranch(rx))
	if err != nil {
		return nil, err
	}
	c.opts.metrics.observeNSC("hard", res.FinalState)
	return res, nil
}

// backPointer records how the survivor into a state was reached.
type backPointer struct {
	prev State
	bit  uint8
}

// decodeViterbi is the forward recursion and traceback shared by both
// variants. Survivors only change on strict improvement, so on equal cost
// the first predecessor found (previous states A..D, input 0 before 1) wins.
func decodeViterbi[M pathMetric](c *NSCCodec, bounds metricBounds[M], branch func(int, [2]uint8) M) (*NSCResult, error) {
	k := c.k
	steps := k + TailLength
	if k > c.opts.maxInfoBits {
		return nil, fmt.Errorf("%w: K=%d, limit %d", ErrScratchExhausted, k, c.opts.maxInfoBits)
	}
	// one arena for every back pointer of this call
	bp := make([]backPointer, steps*numStates)

	var prev, cur [numStates]M
	for s := range prev {
		prev[s] = bounds.sentinel
	}
	prev[StateA] = 0

	for i := 0; i < steps; i++ {
		for s := range cur {
			cur[s] = bounds.sentinel
		}
		for ps := State(0); ps < numStates; ps++ {
			if prev[ps] >= bounds.unreachable {
				continue
			}
			for b := uint8(0); b < 2; b++ {
				tr := trellis[ps][b]
				cand := prev[ps] + branch(i, tr.out)
				if cand < cur[tr.next] {
					cur[tr.next] = cand
					bp[i*numStates+int(tr.next)] = backPointer{prev: ps, bit: b}
				}
			}
		}
		prev = cur
	}

	// Termination should leave the best path in StateA, but under heavy
	// noise another state may be cheaper; take the cheapest, A on ties.
	state := StateA
	best := prev[StateA]
	for s := State(0); s < numStates; s++ {
		if prev[s] < best {
			best = prev[s]
			state = s
		}
	}

	res := &NSCResult{
		Info:       make([]byte, k),
		FinalState: state,
		PathMetric: float64(best),
	}
	for i := steps - 1; i >= 0; i-- {
		p := bp[i*numStates+int(state)]
		if i < k {
			res.Info[i] = p.bit
		}
		state = p.prev
	}

	if c.opts.reencode {
		res.Codeword = make([]byte, c.CodeLen())
		encodeNSC(res.Info, res.Codeword)
	}
	return res, nil
}
