package fec_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fec-codec/fec-codec/fec"
	"github.com/fec-codec/fec-codec/internal/channel"
)

func randomBits(r *rand.Rand, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(r.Intn(2))
	}
	return out
}

// Symbol errors confined to at most t symbols are always undone, whatever
// the bit pattern inside each symbol.
func TestRSBurstsWithinCapacity(t *testing.T) {
	codec, err := fec.NewRSCodec(fec.RSConfig{M: 8, N: 255, K: 223})
	require.NoError(t, err)
	r := rand.New(rand.NewSource(11))
	flip := channel.NewBSC(0.5, r)

	for trial := 0; trial < 20; trial++ {
		info := randomBits(r, codec.InfoBits())
		cw, err := codec.Encode(info)
		require.NoError(t, err)

		recv := append([]byte(nil), cw...)
		for _, sym := range r.Perm(codec.N())[:codec.Capacity()] {
			burst := recv[sym*8 : sym*8+8]
			if flip.Apply(burst) == 0 {
				burst[0] ^= 1
			}
		}
		res, err := codec.Decode(recv)
		require.NoError(t, err)
		require.Equal(t, info, res.Info)
		require.Equal(t, fec.StatusCorrected, res.Status)
	}
}

func TestRSShortenedMatchesParent(t *testing.T) {
	// A shortened codeword is the tail of the parent codeword whose leading
	// information symbols are zero.
	short, err := fec.NewRSCodec(fec.RSConfig{M: 8, N: 204, K: 188})
	require.NoError(t, err)
	parent, err := fec.NewRSCodec(fec.RSConfig{M: 8, N: 255, K: 239})
	require.NoError(t, err)

	r := rand.New(rand.NewSource(12))
	info := make([]uint16, 188)
	for i := range info {
		info[i] = uint16(r.Intn(256))
	}
	scw, err := short.EncodeSymbols(info)
	require.NoError(t, err)
	pcw, err := parent.EncodeSymbols(append(make([]uint16, 51), info...))
	require.NoError(t, err)
	require.Equal(t, pcw[51:], scw)
}

func TestRSStrictModeOverBSC(t *testing.T) {
	strict, err := fec.NewRSCodec(fec.RSConfig{M: 4, N: 15, K: 9}, fec.WithStrictDecoding())
	require.NoError(t, err)
	r := rand.New(rand.NewSource(13))
	bsc := channel.NewBSC(0.2, r)

	var sawFailure bool
	for trial := 0; trial < 200; trial++ {
		info := randomBits(r, strict.InfoBits())
		cw, err := strict.Encode(info)
		require.NoError(t, err)
		bsc.Apply(cw)
		res, err := strict.Decode(cw)
		require.NotNil(t, res)
		if err != nil {
			require.True(t, errors.Is(err, fec.ErrUncorrectable))
			require.NotEqual(t, fec.StatusCorrected, res.Status)
			sawFailure = true
		} else {
			require.Equal(t, fec.StatusCorrected, res.Status)
		}
	}
	require.True(t, sawFailure, "a 20%% bit error rate overwhelms RS(15,9)")
}

func TestCodecsAreSafeForConcurrentUse(t *testing.T) {
	rs, err := fec.NewRSCodec(fec.RSConfig{M: 8, N: 255, K: 223})
	require.NoError(t, err)
	nsc, err := fec.NewNSCCodec(200, fec.WithReencode())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 10; i++ {
				info := randomBits(r, rs.InfoBits())
				cw, err := rs.Encode(info)
				if err != nil {
					errs <- err
					return
				}
				cw[r.Intn(len(cw))] ^= 1
				res, err := rs.Decode(cw)
				if err != nil || string(res.Info) != string(info) {
					errs <- errors.New("rs mismatch")
					return
				}

				bits := randomBits(r, nsc.InfoLen())
				code, err := nsc.Encode(bits)
				if err != nil {
					errs <- err
					return
				}
				code[r.Intn(len(code))] ^= 1
				out, err := nsc.DecodeHard(code)
				if err != nil || string(out.Info) != string(bits) {
					errs <- errors.New("nsc mismatch")
					return
				}
			}
		}(int64(g))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestNSCOverAWGN(t *testing.T) {
	codec, err := fec.NewNSCCodec(100)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(14))
	ch := channel.NewAWGN(4, 0.5, r)

	y := make([]float64, codec.CodeLen())
	llr := make([]float64, codec.CodeLen())
	rx := make([]byte, codec.CodeLen())
	var softErrs, hardErrs, raw int
	for trial := 0; trial < 200; trial++ {
		info := randomBits(r, 100)
		cw, err := codec.Encode(info)
		require.NoError(t, err)
		ch.Transmit(cw, y)
		ch.LLR(y, llr)
		channel.Slice(y, rx)
		for i := range rx {
			if rx[i] != cw[i] {
				raw++
			}
		}
		soft, err := codec.DecodeSoft(llr)
		require.NoError(t, err)
		hard, err := codec.DecodeHard(rx)
		require.NoError(t, err)
		for i := range info {
			if soft.Info[i] != info[i] {
				softErrs++
			}
			if hard.Info[i] != info[i] {
				hardErrs++
			}
		}
	}
	require.Positive(t, raw)
	require.Less(t, hardErrs, raw, "decoding must beat the raw channel")
	require.LessOrEqual(t, softErrs, hardErrs, "soft decisions never do worse here")
}
