package fec

// bitsToSymbols packs consecutive m-bit groups (LSB first) into symbols.
// Only the low bit of every input cell is used.
func bitsToSymbols(bits []byte, m int, dst []uint16) {
	for i := range dst {
		var v uint16
		for b := 0; b < m; b++ {
			v |= uint16(bits[i*m+b]&1) << b
		}
		dst[i] = v
	}
}

// symbolsToBits is the inverse of bitsToSymbols.
func (f *Field) symbolsToBits(syms []uint16, dst []byte) {
	m := f.m
	for i, s := range syms {
		sb := f.symbolBits[s]
		copy(dst[i*m:(i+1)*m], sb[:m])
	}
}

// SymbolsToBits expands symbols into m bits each, LSB first.
func (f *Field) SymbolsToBits(syms []uint16) []byte {
	out := make([]byte, len(syms)*f.m)
	f.symbolsToBits(syms, out)
	return out
}

// BitsToSymbols packs len(bits)/m symbols from bits, LSB first.
func (f *Field) BitsToSymbols(bits []byte) []uint16 {
	out := make([]uint16, len(bits)/f.m)
	bitsToSymbols(bits, f.m, out)
	return out
}
