package ber

import (
	"context"
	"log/slog"
	"math/rand"

	xor "github.com/templexxx/xorsimd"
	"golang.org/x/sync/errgroup"

	"github.com/fec-codec/fec-codec/fec"
	"github.com/fec-codec/fec-codec/internal/channel"
	"github.com/fec-codec/fec-codec/internal/config"
)

// Runner executes the Monte-Carlo sweeps. Eb/N0 points run in parallel,
// each with its own random source derived from the seed, so the output only
// depends on the seed and the configuration.
type Runner struct {
	cfg     config.Config
	seed    int64
	log     *slog.Logger
	metrics *fec.Metrics
}

// NewRunner returns a Runner. metrics may be nil.
func NewRunner(cfg config.Config, seed int64, log *slog.Logger, metrics *fec.Metrics) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{cfg: cfg, seed: seed, log: log.With("component", "ber"), metrics: metrics}
}

// Run executes the selected sweeps and streams the points into sink. The
// sink is not closed.
func (r *Runner) Run(ctx context.Context, sink Sink) error {
	if r.cfg.RunsNSC() {
		if err := r.RunNSC(ctx, sink); err != nil {
			return err
		}
	}
	if r.cfg.RunsRS() {
		if err := r.RunRS(ctx, sink); err != nil {
			return err
		}
	}
	return nil
}

// pointSeed spreads the run seed over schemes and points.
func (r *Runner) pointSeed(scheme, point int) int64 {
	return r.seed + int64(scheme)*1_000_003 + int64(point)*7_919
}

// sweep runs fn for every point with at most cfg.Workers in flight.
func sweep[P any](ctx context.Context, workers int, points []float64, fn func(ctx context.Context, i int, ebn0 float64) (P, error)) ([]P, error) {
	out := make([]P, len(points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ebn0 := range points {
		i, ebn0 := i, ebn0
		g.Go(func() error {
			p, err := fn(ctx, i, ebn0)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RunNSC measures soft and hard Viterbi BER.
func (r *Runner) RunNSC(ctx context.Context, sink Sink) error {
	sc := r.cfg.NSC
	codec, err := fec.NewNSCCodec(sc.K, fec.WithMetrics(r.metrics))
	if err != nil {
		return err
	}
	log := r.log.With("scheme", "nsc", "k", sc.K)
	log.Info("sweep started", "points", len(sc.Points()), "trials", sc.Trials)

	points, err := sweep(ctx, r.cfg.Workers, sc.Points(), func(ctx context.Context, i int, ebn0 float64) (NSCPoint, error) {
		rng := rand.New(rand.NewSource(r.pointSeed(0, i)))
		ch := channel.NewAWGN(ebn0, 0.5, rng)
		n := codec.CodeLen()
		y := make([]float64, n)
		llr := make([]float64, n)
		rx := make([]byte, n)
		info := make([]byte, sc.K)
		diff := make([]byte, sc.K)

		p := NSCPoint{EbN0DB: ebn0, Trials: sc.Trials, BERBPSK: channel.BPSKBitErrorRate(ebn0)}
		for t := 0; t < sc.Trials; t++ {
			if err := ctx.Err(); err != nil {
				return p, err
			}
			randomBits(rng, info)
			cw, err := codec.Encode(info)
			if err != nil {
				return p, err
			}
			ch.Transmit(cw, y)
			ch.LLR(y, llr)
			channel.Slice(y, rx)

			soft, err := codec.DecodeSoft(llr)
			if err != nil {
				return p, err
			}
			hard, err := codec.DecodeHard(rx)
			if err != nil {
				return p, err
			}
			p.SoftErrors += int64(bitErrors(diff, info, soft.Info))
			p.HardErrors += int64(bitErrors(diff, info, hard.Info))
			p.Bits += int64(sc.K)
		}
		if p.Bits > 0 {
			p.BERSoft = float64(p.SoftErrors) / float64(p.Bits)
			p.BERHard = float64(p.HardErrors) / float64(p.Bits)
		}
		log.Debug("point done", "ebn0_db", ebn0, "ber_soft", p.BERSoft, "ber_hard", p.BERHard)
		return p, nil
	})
	if err != nil {
		return err
	}
	for _, p := range points {
		if err := sink.WriteNSC(p); err != nil {
			return err
		}
	}
	log.Info("sweep finished")
	return nil
}

// RunRS measures hard decision RS BER and BLER.
func (r *Runner) RunRS(ctx context.Context, sink Sink) error {
	sc := r.cfg.RS
	codec, err := fec.NewRSCodec(fec.RSConfig{M: sc.M, N: sc.N, K: sc.K}, fec.WithMetrics(r.metrics))
	if err != nil {
		return err
	}
	rate := float64(sc.K) / float64(sc.N)
	log := r.log.With("scheme", "rs", "m", sc.M, "n", sc.N, "k", sc.K)
	log.Info("sweep started", "points", len(sc.Points()), "trials", sc.Trials)

	points, err := sweep(ctx, r.cfg.Workers, sc.Points(), func(ctx context.Context, i int, ebn0 float64) (RSPoint, error) {
		rng := rand.New(rand.NewSource(r.pointSeed(1, i)))
		ch := channel.NewAWGN(ebn0, rate, rng)
		y := make([]float64, codec.CodeBits())
		rx := make([]byte, codec.CodeBits())
		info := make([]byte, codec.InfoBits())
		diff := make([]byte, codec.InfoBits())

		ber := channel.BPSKBitErrorRate(ebn0)
		p := RSPoint{
			EbN0DB:   ebn0,
			Trials:   sc.Trials,
			BERBPSK:  ber,
			BLERBPSK: channel.BlockErrorRate(ber, codec.CodeBits()),
		}
		for t := 0; t < sc.Trials; t++ {
			if err := ctx.Err(); err != nil {
				return p, err
			}
			randomBits(rng, info)
			cw, err := codec.Encode(info)
			if err != nil {
				return p, err
			}
			ch.Transmit(cw, y)
			channel.Slice(y, rx)
			res, err := codec.Decode(rx)
			if err != nil {
				return p, err
			}
			switch res.Status {
			case fec.StatusCorrected:
				p.Corrected++
			case fec.StatusPartiallyCorrected:
				p.Partial++
			default:
				p.Uncorrectable++
			}
			e := bitErrors(diff, info, res.Info)
			p.BitErrors += int64(e)
			if e > 0 {
				p.BlockErrors++
			}
			p.Bits += int64(len(info))
		}
		if p.Bits > 0 {
			p.BER = float64(p.BitErrors) / float64(p.Bits)
		}
		if p.Trials > 0 {
			p.BLER = float64(p.BlockErrors) / float64(p.Trials)
		}
		log.Debug("point done", "ebn0_db", ebn0, "ber", p.BER, "bler", p.BLER)
		return p, nil
	})
	if err != nil {
		return err
	}
	for _, p := range points {
		if err := sink.WriteRS(p); err != nil {
			return err
		}
	}
	log.Info("sweep finished")
	return nil
}

func randomBits(rng *rand.Rand, dst []byte) {
	for i := range dst {
		dst[i] = byte(rng.Intn(2))
	}
}

// bitErrors counts the positions where a and b differ, using diff as
// scratch.
func bitErrors(diff, a, b []byte) int {
	if len(a) == 0 {
		return 0
	}
	xor.Encode(diff, [][]byte{a, b})
	errs := 0
	for _, d := range diff[:len(a)] {
		errs += int(d & 1)
	}
	return errs
}
