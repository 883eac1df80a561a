package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fec-codec/fec-codec/fec"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.NSC.Points(), 11)
	require.Len(t, cfg.RS.Points(), 29)
	require.Equal(t, 14.0, cfg.RS.Points()[28])
	require.True(t, cfg.RunsNSC())
	require.True(t, cfg.RunsRS())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheme: rs
seed: 42
rs:
  m: 4
  n: 15
  k: 9
  max_db: 6
  trials: 10
logging:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, SchemeRS, cfg.Scheme)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, RSSweep{M: 4, N: 15, K: 9, Sweep: Sweep{MinDB: 0, MaxDB: 6, StepDB: 0.5, Trials: 10}}, cfg.RS)
	require.Equal(t, Logging{Level: "info", Format: "json"}, cfg.Logging)
	require.Equal(t, 100, cfg.NSC.K, "untouched sections keep their defaults")
	require.False(t, cfg.RunsNSC())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nsc: [1, 2"), 0o644))
	_, err = Load(path)
	require.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"scheme":   func(c *Config) { c.Scheme = "ldpc" },
		"workers":  func(c *Config) { c.Workers = 0 },
		"dir":      func(c *Config) { c.ResultsDir = "" },
		"format":   func(c *Config) { c.Logging.Format = "xml" },
		"nsc k":    func(c *Config) { c.NSC.K = -1 },
		"step":     func(c *Config) { c.NSC.StepDB = 0 },
		"range":    func(c *Config) { c.RS.MinDB, c.RS.MaxDB = 5, 4 },
		"trials":   func(c *Config) { c.RS.Trials = 0 },
		"rs n":     func(c *Config) { c.RS.N = 300 },
		"rs field": func(c *Config) { c.RS.M = 9 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.RS.M = 9
	require.ErrorIs(t, cfg.Validate(), fec.ErrFieldDegree)

	// a broken section that is not run does not matter
	cfg = Default()
	cfg.Scheme = SchemeNSC
	cfg.RS.N = 300
	require.NoError(t, cfg.Validate())
}

func TestSweepPoints(t *testing.T) {
	require.Equal(t, []float64{1, 1.5, 2}, Sweep{MinDB: 1, MaxDB: 2, StepDB: 0.5}.Points())
	require.Equal(t, []float64{3}, Sweep{MinDB: 3, MaxDB: 3, StepDB: 1}.Points())
	require.Nil(t, Sweep{MinDB: 0, MaxDB: 1, StepDB: 0}.Points())
}
