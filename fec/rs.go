package fec

import (
	"errors"
	"fmt"
)

var (
	ErrCodeParams     = errors.New("fec: bad RS code parameters")
	ErrParityMismatch = errors.New("fec: parity length does not equal N-K")
	ErrInfoLength     = errors.New("fec: information length mismatch")
	ErrReceivedLength = errors.New("fec: received word length mismatch")
)

// RSConfig describes a (possibly shortened) Reed-Solomon code over GF(2^M).
// T may be left zero, in which case it is derived as N-K.
type RSConfig struct {
	M int // symbol width in bits
	N int // transmitted codeword length in symbols, <= 2^M-1
	K int // information symbols
	T int // parity symbols
}

// RSCodec is a systematic Reed-Solomon encoder/decoder. It is immutable after
// NewRSCodec and safe for concurrent use.
type RSCodec struct {
	field *Field
	n, k  int
	t     int // parity symbols
	s     int // shortening: parent length minus n
	gen   []uint16
	opts  options
}

// NewRSCodec builds the field tables and the generator polynomial for cfg.
func NewRSCodec(cfg RSConfig, opts ...Option) (*RSCodec, error) {
	f, err := NewField(cfg.M)
	if err != nil {
		return nil, err
	}
	np := f.Order()
	if cfg.K <= 0 || cfg.N < cfg.K {
		return nil, fmt.Errorf("%w: N=%d K=%d", ErrCodeParams, cfg.N, cfg.K)
	}
	if cfg.N > np {
		return nil, fmt.Errorf("%w: N=%d exceeds parent length %d", ErrCodeParams, cfg.N, np)
	}
	t := cfg.N - cfg.K
	if cfg.T != 0 && cfg.T != t {
		return nil, fmt.Errorf("%w: T=%d, N-K=%d", ErrParityMismatch, cfg.T, t)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RSCodec{
		field: f,
		n:     cfg.N,
		k:     cfg.K,
		t:     t,
		s:     np - cfg.N,
		gen:   buildGenerator(f, t),
		opts:  o,
	}, nil
}

// Field returns the codec's field tables.
func (c *RSCodec) Field() *Field { return c.field }

// N returns the transmitted codeword length in symbols.
func (c *RSCodec) N() int { return c.n }

// K returns the information length in symbols.
func (c *RSCodec) K() int { return c.k }

// T returns the parity length in symbols.
func (c *RSCodec) T() int { return c.t }

// Shortening returns the number of implicit leading zero symbols.
func (c *RSCodec) Shortening() int { return c.s }

// Capacity returns the number of symbol errors the code guarantees to fix.
func (c *RSCodec) Capacity() int { return c.t / 2 }

// Generator returns a copy of g(x), low degree first.
func (c *RSCodec) Generator() []uint16 {
	out := make([]uint16, len(c.gen))
	copy(out, c.gen)
	return out
}

// InfoBits returns K*m.
func (c *RSCodec) InfoBits() int { return c.k * c.field.m }

// CodeBits returns N*m.
func (c *RSCodec) CodeBits() int { return c.n * c.field.m }

// Encode maps K*m information bits (LSB first per symbol) to the N*m bit
// systematic codeword.
func (c *RSCodec) Encode(info []byte) ([]byte, error) {
	if len(info) != c.InfoBits() {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrInfoLength, len(info), c.InfoBits())
	}
	u := make([]uint16, c.k)
	bitsToSymbols(info, c.field.m, u)
	cw := c.encodeSymbols(u)
	out := make([]byte, c.CodeBits())
	c.field.symbolsToBits(cw, out)
	return out, nil
}

// EncodeSymbols is Encode at the symbol level: K symbols in, N symbols out.
func (c *RSCodec) EncodeSymbols(info []uint16) ([]uint16, error) {
	if len(info) != c.k {
		return nil, fmt.Errorf("%w: got %d symbols, want %d", ErrInfoLength, len(info), c.k)
	}
	return c.encodeSymbols(info), nil
}

func (c *RSCodec) encodeSymbols(u []uint16) []uint16 {
	f, t, g := c.field, c.t, c.gen
	cw := make([]uint16, c.n)
	copy(cw, u)
	if t == 0 {
		return cw
	}
	parity := cw[c.k:]
	shift := func(fb uint16) {
		for j := 0; j < t-1; j++ {
			parity[j] = parity[j+1] ^ f.Mul(fb, g[j+1])
		}
		parity[t-1] = f.Mul(fb, g[t])
	}
	// virtual zeros of the parent code, then the real symbols
	for i := 0; i < c.s; i++ {
		shift(parity[0])
	}
	for _, sym := range u {
		shift(sym ^ parity[0])
	}
	return cw
}
