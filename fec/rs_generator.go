package fec

// firstConsecutiveRoot is b in g(x) = (x - a^b)(x - a^(b+1))...(x - a^(b+T-1)).
// The syndrome evaluation points must use the same b.
const firstConsecutiveRoot = 0

// buildGenerator returns g(x) = prod_{i=0}^{T-1} (x - a^(b+i)), low degree
// first, scaled so that g[0] == 1. The encoder uses g[1..T] as feedback taps.
func buildGenerator(f *Field, t int) []uint16 {
	g := make([]uint16, t+1)
	g[0] = 1
	tmp := make([]uint16, t+1)
	for i := 0; i < t; i++ {
		root := f.Exp(firstConsecutiveRoot + i)
		copy(tmp[:i+1], g[:i+1])
		// multiply by (x + root): g'[j] = g[j-1] + root*g[j]
		g[i+1] = tmp[i]
		for j := i; j >= 1; j-- {
			g[j] = tmp[j-1] ^ f.Mul(tmp[j], root)
		}
		g[0] = f.Mul(tmp[0], root)
	}
	inv := f.Inv(g[0])
	for j := range g {
		g[j] = f.Mul(g[j], inv)
	}
	return g
}
