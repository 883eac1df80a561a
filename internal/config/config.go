package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/fec-codec/fec-codec/fec"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Schemes accepted by Config.Scheme.
const (
	SchemeNSC = "nsc"
	SchemeRS  = "rs"
	SchemeAll = "all"
)

// Sweep is an inclusive Eb/N0 range in dB plus the trials run per point.
type Sweep struct {
	MinDB  float64 `yaml:"min_db"`
	MaxDB  float64 `yaml:"max_db"`
	StepDB float64 `yaml:"step_db"`
	Trials int     `yaml:"trials"`
}

// Points expands the sweep into its Eb/N0 values.
func (s Sweep) Points() []float64 {
	if s.StepDB <= 0 || s.MaxDB < s.MinDB {
		return nil
	}
	n := int(math.Floor((s.MaxDB-s.MinDB)/s.StepDB+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = s.MinDB + float64(i)*s.StepDB
	}
	return out
}

func (s Sweep) validate(name string) error {
	switch {
	case s.StepDB <= 0:
		return fmt.Errorf("%w: %s.step_db must be positive, got %v", ErrInvalidConfig, name, s.StepDB)
	case s.MaxDB < s.MinDB:
		return fmt.Errorf("%w: %s.max_db %v below min_db %v", ErrInvalidConfig, name, s.MaxDB, s.MinDB)
	case s.Trials <= 0:
		return fmt.Errorf("%w: %s.trials must be positive, got %d", ErrInvalidConfig, name, s.Trials)
	}
	return nil
}

// NSCSweep configures the convolutional code experiment.
type NSCSweep struct {
	K     int `yaml:"k"`
	Sweep `yaml:",inline"`
}

// RSSweep configures the Reed-Solomon experiment.
type RSSweep struct {
	M     int `yaml:"m"`
	N     int `yaml:"n"`
	K     int `yaml:"k"`
	Sweep `yaml:",inline"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config is the full fec_eval configuration.
type Config struct {
	Scheme      string   `yaml:"scheme"`
	Seed        int64    `yaml:"seed"` // 0 picks a time based seed
	Workers     int      `yaml:"workers"`
	ResultsDir  string   `yaml:"results_dir"`
	MetricsAddr string   `yaml:"metrics_addr"`
	Logging     Logging  `yaml:"logging"`
	NSC         NSCSweep `yaml:"nsc"`
	RS          RSSweep  `yaml:"rs"`
}

// Default reproduces the reference experiments.
func Default() Config {
	return Config{
		Scheme:     SchemeAll,
		Workers:    runtime.GOMAXPROCS(0),
		ResultsDir: "results",
		Logging:    Logging{Level: "info", Format: "text"},
		NSC: NSCSweep{
			K:     100,
			Sweep: Sweep{MinDB: 0, MaxDB: 10, StepDB: 1, Trials: 100000},
		},
		RS: RSSweep{
			M: 8, N: 255, K: 223,
			Sweep: Sweep{MinDB: 0, MaxDB: 14, StepDB: 0.5, Trials: 100000},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// RunsNSC reports whether the NSC experiment is selected.
func (c Config) RunsNSC() bool { return c.Scheme == SchemeNSC || c.Scheme == SchemeAll }

// RunsRS reports whether the RS experiment is selected.
func (c Config) RunsRS() bool { return c.Scheme == SchemeRS || c.Scheme == SchemeAll }

// Validate rejects configurations that cannot produce a sweep.
func (c Config) Validate() error {
	switch c.Scheme {
	case SchemeNSC, SchemeRS, SchemeAll:
	default:
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidConfig, c.Scheme)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.ResultsDir == "" {
		return fmt.Errorf("%w: results_dir is empty", ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if c.RunsNSC() {
		if c.NSC.K < 0 {
			return fmt.Errorf("%w: nsc.k must not be negative, got %d", ErrInvalidConfig, c.NSC.K)
		}
		if err := c.NSC.validate("nsc"); err != nil {
			return err
		}
	}
	if c.RunsRS() {
		if _, err := fec.NewRSCodec(fec.RSConfig{M: c.RS.M, N: c.RS.N, K: c.RS.K}); err != nil {
			return fmt.Errorf("%w: rs: %w", ErrInvalidConfig, err)
		}
		if err := c.RS.validate("rs"); err != nil {
			return err
		}
	}
	return nil
}
