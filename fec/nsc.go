package fec

import (
	"errors"
	"fmt"
)

var (
	ErrCodeLength       = errors.New("fec: codeword length mismatch")
	ErrScratchExhausted = errors.New("fec: decoder scratch exceeds the configured limit")
)

// NSCCodec encodes and Viterbi-decodes fixed-size frames of K information
// bits with the terminated rate-1/2 convolutional code in trellis.go.
type NSCCodec struct {
	k    int
	opts options
}

// NewNSCCodec returns a codec for K-bit frames. K may be zero (tail only).
func NewNSCCodec(k int, opts ...Option) (*NSCCodec, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: K=%d", ErrInfoLength, k)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &NSCCodec{k: k, opts: o}, nil
}

// InfoLen returns K.
func (c *NSCCodec) InfoLen() int { return c.k }

// CodeLen returns 2*(K+TailLength).
func (c *NSCCodec) CodeLen() int { return 2 * (c.k + TailLength) }

// Encode appends the zero tail to info and walks the trellis from StateA.
func (c *NSCCodec) Encode(info []byte) ([]byte, error) {
	if len(info) != c.k {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrInfoLength, len(info), c.k)
	}
	code := make([]byte, c.CodeLen())
	encodeNSC(info, code)
	return code, nil
}

// encodeNSC writes 2*(len(info)+TailLength) bits into code.
func encodeNSC(info, code []byte) State {
	state := StateA
	step := func(i int, b uint8) {
		tr := trellis[state][b&1]
		code[2*i] = tr.out[0]
		code[2*i+1] = tr.out[1]
		state = tr.next
	}
	for i, b := range info {
		step(i, b)
	}
	for i := 0; i < TailLength; i++ {
		step(len(info)+i, 0)
	}
	return state
}
