package fec

import (
	"errors"
	"fmt"
)

// ErrUncorrectable is returned by strict decoders together with the
// best-effort result when the decoder could not vouch for its output.
var ErrUncorrectable = errors.New("fec: received word is likely uncorrectable")

// DecodeStatus classifies an RS decode. The corrected bits do not depend on
// it; it only tells the caller how much to trust them.
type DecodeStatus int

const (
	// StatusCorrected: no errors, or every locator root was found and the
	// magnitude system was regular.
	StatusCorrected DecodeStatus = iota
	// StatusPartiallyCorrected: corrections were applied but fewer roots than
	// the locator degree were found, or the magnitude system was singular.
	StatusPartiallyCorrected
	// StatusLikelyUncorrectable: the error pattern exceeds the capacity of
	// the code as far as the decoder can tell.
	StatusLikelyUncorrectable
)

func (s DecodeStatus) String() string {
	switch s {
	case StatusCorrected:
		return "corrected"
	case StatusPartiallyCorrected:
		return "partially_corrected"
	case StatusLikelyUncorrectable:
		return "likely_uncorrectable"
	default:
		return fmt.Sprintf("DecodeStatus(%d)", int(s))
	}
}

// RSResult is the outcome of RSCodec.Decode.
type RSResult struct {
	Codeword []byte // N*m corrected codeword bits
	Info     []byte // K*m decoded information bits

	Status        DecodeStatus
	Syndromes     []uint16
	LocatorDegree int   // BM degree before clamping to the capacity
	ErrorCount    int   // roots located by the Chien search
	Positions     []int // corrected symbol indices within the N-symbol codeword
	Singular      bool  // the magnitude system had a zero pivot column
}

// rsScratch carves all per-call working storage out of one allocation.
type rsScratch struct {
	parent []uint16 // Np received symbols, S leading zeros
	synd   []uint16 // T
	c, b   []uint16 // T+1, BM current and previous locator
	tmp    []uint16 // T+1
	sigma  []uint16 // t+1
	pos    []uint16 // t+1 Chien roots (parent indices)
	a      []uint16 // t*t magnitude system
	rhs    []uint16 // t
}

func newRSScratch(np, t int) *rsScratch {
	tc := t / 2
	sizes := []int{np, t, t + 1, t + 1, t + 1, tc + 1, tc + 1, tc * tc, tc}
	total := 0
	for _, n := range sizes {
		total += n
	}
	arena := make([]uint16, total)
	take := func(n int) []uint16 {
		s := arena[:n:n]
		arena = arena[n:]
		return s
	}
	return &rsScratch{
		parent: take(np),
		synd:   take(t),
		c:      take(t + 1),
		b:      take(t + 1),
		tmp:    take(t + 1),
		sigma:  take(tc + 1),
		pos:    take(tc + 1),
		a:      take(tc * tc),
		rhs:    take(tc),
	}
}

// Decode corrects up to T/2 symbol errors in N*m received bits. It never
// fails because of the error pattern: beyond capacity it silently returns a
// best-effort (possibly wrong) codeword and reports the fact in Status. With
// WithStrictDecoding the result is accompanied by ErrUncorrectable.
func (c *RSCodec) Decode(recv []byte) (*RSResult, error) {
	if len(recv) != c.CodeBits() {
		return nil, fmt.Errorf("%w: got %d bits, want %d", ErrReceivedLength, len(recv), c.CodeBits())
	}
	f := c.field
	sc := newRSScratch(f.np, c.t)
	bitsToSymbols(recv, f.m, sc.parent[c.s:])

	res, err := c.decodeParent(sc)
	if err != nil {
		return nil, err
	}
	res.Codeword = make([]byte, c.CodeBits())
	f.symbolsToBits(sc.parent[c.s:], res.Codeword)
	res.Info = make([]byte, c.InfoBits())
	copy(res.Info, res.Codeword[:c.InfoBits()])

	c.opts.metrics.observeRS(res)
	if c.opts.strict && res.Status != StatusCorrected {
		return res, ErrUncorrectable
	}
	return res, nil
}

// DecodeSymbols is Decode at the symbol level. The returned slice holds the
// N corrected codeword symbols.
func (c *RSCodec) DecodeSymbols(recv []uint16) ([]uint16, *RSResult, error) {
	if len(recv) != c.n {
		return nil, nil, fmt.Errorf("%w: got %d symbols, want %d", ErrReceivedLength, len(recv), c.n)
	}
	sc := newRSScratch(c.field.np, c.t)
	copy(sc.parent[c.s:], recv)
	res, err := c.decodeParent(sc)
	if err != nil {
		return nil, nil, err
	}
	out := make([]uint16, c.n)
	copy(out, sc.parent[c.s:])
	c.opts.metrics.observeRS(res)
	if c.opts.strict && res.Status != StatusCorrected {
		return out, res, ErrUncorrectable
	}
	return out, res, nil
}

// decodeParent runs syndrome -> BM -> Chien -> magnitudes on sc.parent and
// corrects it in place.
func (c *RSCodec) decodeParent(sc *rsScratch) (*RSResult, error) {
	res := &RSResult{Status: StatusCorrected}
	c.syndromes(sc.parent, sc.synd)
	res.Syndromes = append([]uint16(nil), sc.synd...)

	clean := true
	for _, s := range sc.synd {
		if s != 0 {
			clean = false
			break
		}
	}
	if clean {
		return res, nil
	}

	capacity := c.t / 2
	l, err := c.berlekampMassey(sc)
	if err != nil {
		return nil, err
	}
	res.LocatorDegree = l
	if l > capacity {
		l = capacity
	}
	count := c.chienSearch(sc.sigma, l, sc.pos)
	res.ErrorCount = count

	if count > 0 && count <= capacity {
		res.Singular = c.solveMagnitudes(sc, count)
		for k := 0; k < count; k++ {
			p := int(sc.pos[k])
			sc.parent[p] ^= sc.rhs[k]
			if p >= c.s {
				res.Positions = append(res.Positions, p-c.s)
			}
		}
	}

	switch {
	case res.LocatorDegree > capacity, count == 0, count > capacity, count > l:
		res.Status = StatusLikelyUncorrectable
	case count < l, res.Singular:
		res.Status = StatusPartiallyCorrected
	}
	return res, nil
}

// syndromes evaluates r(x) at a^(b+i), i = 0..T-1, over the parent length.
func (c *RSCodec) syndromes(r, out []uint16) {
	f := c.field
	for i := range out {
		e := firstConsecutiveRoot + i
		var sum uint16
		for j, v := range r {
			if v == 0 {
				continue
			}
			sum ^= f.Mul(v, f.Exp(e*j))
		}
		out[i] = sum
	}
}

// berlekampMassey leaves the locator in sc.sigma (degree clamped to T/2,
// sigma[0] forced to 1) and returns the unclamped degree L.
func (c *RSCodec) berlekampMassey(sc *rsScratch) (int, error) {
	f := c.field
	t := c.t
	cur, prev, s := sc.c, sc.b, sc.synd
	cur[0], prev[0] = 1, 1

	l := 0
	shift := 1
	lastD := uint16(1)
	for n := 0; n < t; n++ {
		d := s[n]
		for i := 1; i <= l; i++ {
			d ^= f.Mul(cur[i], s[n-i])
		}
		if d == 0 {
			shift++
			continue
		}
		copy(sc.tmp, cur)
		coef, err := f.Div(d, lastD)
		if err != nil {
			return 0, fmt.Errorf("berlekamp-massey: %w", err)
		}
		for i := 0; i+shift <= t; i++ {
			cur[i+shift] ^= f.Mul(coef, prev[i])
		}
		if 2*l <= n {
			copy(prev, sc.tmp)
			l = n + 1 - l
			lastD = d
			shift = 1
		} else {
			shift++
		}
	}

	capacity := t / 2
	for i := range sc.sigma {
		sc.sigma[i] = 0
	}
	for i := 0; i <= l && i <= capacity; i++ {
		sc.sigma[i] = cur[i]
	}
	if sc.sigma[0] == 0 {
		sc.sigma[0] = 1
	}
	return l, nil
}

// chienSearch evaluates sigma at a^(-i) for every parent position i and
// records the roots in pos. It stops after l+1 roots.
func (c *RSCodec) chienSearch(sigma []uint16, l int, pos []uint16) int {
	f := c.field
	np := f.np
	count := 0
	for i := 0; i < np; i++ {
		xInv := f.exp[(np-i)%np]
		var sum uint16
		power := uint16(1)
		for j := 0; j <= l; j++ {
			if sigma[j] != 0 {
				sum ^= f.Mul(sigma[j], power)
			}
			power = f.Mul(power, xInv)
		}
		if sum != 0 {
			continue
		}
		if count < len(pos) {
			pos[count] = uint16(i)
		}
		count++
		if count > l {
			break
		}
	}
	return count
}

// solveMagnitudes solves S_r = sum_k e_k a^((b+r)*pos_k), r < count, by
// Gaussian elimination and leaves e in sc.rhs. A column without a non-zero
// pivot is skipped; the return value reports whether that happened.
func (c *RSCodec) solveMagnitudes(sc *rsScratch, count int) bool {
	f := c.field
	n := count
	a := sc.a[:n*n]
	rhs := sc.rhs[:n]
	for r := 0; r < n; r++ {
		rhs[r] = sc.synd[r]
		for col := 0; col < n; col++ {
			a[r*n+col] = f.Exp((firstConsecutiveRoot + r) * int(sc.pos[col]))
		}
	}

	singular := false
	for i := 0; i < n; i++ {
		if a[i*n+i] == 0 {
			for r := i + 1; r < n; r++ {
				if a[r*n+i] != 0 {
					for col := 0; col < n; col++ {
						a[i*n+col], a[r*n+col] = a[r*n+col], a[i*n+col]
					}
					rhs[i], rhs[r] = rhs[r], rhs[i]
					break
				}
			}
		}
		piv := a[i*n+i]
		if piv == 0 {
			singular = true
			continue
		}
		inv := f.Inv(piv)
		for col := 0; col < n; col++ {
			a[i*n+col] = f.Mul(a[i*n+col], inv)
		}
		rhs[i] = f.Mul(rhs[i], inv)
		for r := 0; r < n; r++ {
			if r == i {
				continue
			}
			factor := a[r*n+i]
			if factor == 0 {
				continue
			}
			for col := 0; col < n; col++ {
				a[r*n+col] ^= f.Mul(factor, a[i*n+col])
			}
			rhs[r] ^= f.Mul(factor, rhs[i])
		}
	}
	return singular
}
