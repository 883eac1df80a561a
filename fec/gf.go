package fec

import (
	"errors"
	"fmt"
)

// GF(2^m) arithmetic using log/antilog tables, m = 1..8.

// MaxFieldDegree is the widest symbol supported by Field.
const MaxFieldDegree = 8

var (
	ErrFieldDegree    = errors.New("fec: field degree must be in [1,8]")
	ErrDivisionByZero = errors.New("fec: division by zero in GF(2^m)")
)

// primitive polynomials indexed by degree; generator element is x (0x02).
var primitivePoly = [MaxFieldDegree + 1]uint16{
	0x00, 0x03, 0x07, 0x0B, 0x13, 0x25, 0x43, 0x89, 0x11D,
}

// Field holds the tables for one GF(2^m). It is read-only after NewField
// returns and can be shared between goroutines.
type Field struct {
	m  int
	np int // 2^m - 1

	exp        []uint16 // doubled: exp[i] == exp[i+np]
	log        []uint16 // log[0] unused
	symbolBits [][MaxFieldDegree]uint8
}

// NewField builds the exponential, logarithm and bit decomposition tables
// for GF(2^m).
func NewField(m int) (*Field, error) {
	if m < 1 || m > MaxFieldDegree {
		return nil, fmt.Errorf("%w: got %d", ErrFieldDegree, m)
	}
	np := (1 << m) - 1
	f := &Field{
		m:          m,
		np:         np,
		exp:        make([]uint16, 2*np),
		log:        make([]uint16, np+1),
		symbolBits: make([][MaxFieldDegree]uint8, np+1),
	}
	prim := primitivePoly[m]
	x := uint16(1)
	for i := 0; i < np; i++ {
		f.exp[i] = x
		f.log[x] = uint16(i)
		x <<= 1
		if x&(1<<m) != 0 { // carry out of the top bit
			x ^= prim
		}
	}
	for i := np; i < 2*np; i++ {
		f.exp[i] = f.exp[i-np]
	}
	for v := 0; v <= np; v++ {
		for b := 0; b < m; b++ {
			f.symbolBits[v][b] = uint8(v>>b) & 1
		}
	}
	return f, nil
}

// Degree returns m.
func (f *Field) Degree() int { return f.m }

// Order returns Np = 2^m - 1, the size of the multiplicative group.
func (f *Field) Order() int { return f.np }

// Add returns a + b (and a - b).
func (f *Field) Add(a, b uint16) uint16 { return a ^ b }

// Mul returns a * b.
func (f *Field) Mul(a, b uint16) uint16 {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+int(f.log[b])]
}

// Div returns a / b. Division by zero aborts the caller's computation.
func (f *Field) Div(a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	idx := int(f.log[a]) - int(f.log[b])
	if idx < 0 {
		idx += f.np
	}
	return f.exp[idx], nil
}

// Pow returns base^power for any integer power. 0^n is 0.
func (f *Field) Pow(base uint16, power int) uint16 {
	if base == 0 {
		return 0
	}
	x := (int(f.log[base]) * power) % f.np
	if x < 0 {
		x += f.np
	}
	return f.exp[x]
}

// Inv returns the multiplicative inverse of a. Inv(0) is 0 by convention.
func (f *Field) Inv(a uint16) uint16 {
	if a == 0 {
		return 0
	}
	return f.exp[f.np-int(f.log[a])]
}

// Exp returns alpha^e with e reduced modulo Np.
func (f *Field) Exp(e int) uint16 {
	e %= f.np
	if e < 0 {
		e += f.np
	}
	return f.exp[e]
}

// Log returns the discrete logarithm of a non-zero element.
func (f *Field) Log(a uint16) int { return int(f.log[a]) }

// SymbolBits returns the LSB-first bit decomposition of a, zero padded to
// MaxFieldDegree.
func (f *Field) SymbolBits(a uint16) [MaxFieldDegree]uint8 { return f.symbolBits[a] }
