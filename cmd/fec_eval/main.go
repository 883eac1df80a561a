package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fec-codec/fec-codec/fec"
	"github.com/fec-codec/fec-codec/internal/ber"
	"github.com/fec-codec/fec-codec/internal/config"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "YAML sweep configuration (defaults reproduce the reference runs)")
		which       = flag.String("scheme", "", "which scheme to run: nsc|rs|all")
		trials      = flag.Int("trials", 0, "frames per Eb/N0 point for every scheme")
		seed        = flag.Int64("seed", 0, "random seed (0 = time based)")
		workers     = flag.Int("workers", 0, "Eb/N0 points simulated concurrently")
		outDir      = flag.String("out", "", "results directory")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9100")
		logLevel    = flag.String("log-level", "", "debug|info|warn|error")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scheme":
			cfg.Scheme = *which
		case "trials":
			cfg.NSC.Trials = *trials
			cfg.RS.Trials = *trials
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.ResultsDir = *outDir
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fatalf("%v", err)
	}
	slog.SetDefault(logger)

	started := time.Now()
	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = started.UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := fec.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	ts := started.Format("20060102_150405")
	meta := ber.Meta{
		Seed:    runSeed,
		Started: started,
		NSCK:    cfg.NSC.K,
		RSM:     cfg.RS.M,
		RSN:     cfg.RS.N,
		RSK:     cfg.RS.K,
	}
	jsonPath := filepath.Join(cfg.ResultsDir, "summary_"+ts+".json")
	mdPath := filepath.Join(cfg.ResultsDir, "report_"+ts+".md")
	sink := ber.Tee(
		ber.NewCSVSink(cfg.ResultsDir),
		ber.NewSummarySink(jsonPath, meta),
		ber.NewReportSink(mdPath, meta),
	)

	logger.Info("fec_eval starting", "scheme", cfg.Scheme, "seed", runSeed, "workers", cfg.Workers, "results_dir", cfg.ResultsDir)
	runErr := ber.NewRunner(cfg, runSeed, logger, metrics).Run(ctx, sink)
	if err := sink.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fatalf("interrupted")
		}
		fatalf("%v", runErr)
	}
	logger.Info("fec_eval finished", "elapsed", time.Since(started).Round(time.Millisecond))
	fmt.Printf("Report written: %s\nJSON: %s\n", mdPath, jsonPath)
}

func newLogger(l config.Logging) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if l.Format == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h), nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
