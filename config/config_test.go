package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestSaveLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.ORB.Risk = 2500
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Journal.StateDir = "elsewhere/journal"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.ORB.Risk = -1
	require.NoError(t, cfg.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "orb.risk")
}

func TestLoadGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: [not json"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"missing orders file", func(c *Config) { c.Journal.OrdersFile = "" }, "orders_file"},
		{"missing state dir", func(c *Config) { c.Journal.StateDir = "" }, "state_dir"},
		{"no strategies", func(c *Config) { c.Journal.Strategies = nil }, "strategies"},
		{"code count mismatch", func(c *Config) { c.Journal.StrategyCodes = []string{"O"} }, "strategy_codes"},
		{"missing default strategy", func(c *Config) { c.Journal.DefaultStrategy = "" }, "default_strategy"},
		{"missing universe file", func(c *Config) { c.Universe.JSONFile = "" }, "universe.json_file"},
		{"bad risk", func(c *Config) { c.ORB.Risk = 0 }, "orb.risk"},
		{"bad stock counts", func(c *Config) { c.ORB.LongStocks = 0 }, "long_stocks"},
		{"inverted orb band", func(c *Config) { c.ORB.UpperPrice = c.ORB.LowerPrice }, "price band"},
		{"bad tail ratio", func(c *Config) { c.Scanner.TailBodyRatio = 0 }, "tail_body_ratio"},
		{"bad marubozu shadow", func(c *Config) { c.Scanner.MarubozuShadow = 1 }, "marubozu_shadow"},
		{"inverted scanner band", func(c *Config) { c.Scanner.LowerPrice = 0 }, "price band"},
		{"missing bhavcopy dir", func(c *Config) { c.Bhavcopy.Dir = "" }, "bhavcopy.dir"},
		{"missing base url", func(c *Config) { c.Bhavcopy.BaseURL = "" }, "base_url"},
		{"bad timeout", func(c *Config) { c.Bhavcopy.TimeoutSeconds = 0 }, "timeout_seconds"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
