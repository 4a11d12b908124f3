package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings for every tool in the kit. One file covers the whole
// CLI so a single `nsetrader config init` sets up everything.
type Config struct {
	DataDir  string         `json:"data_dir" yaml:"data_dir"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Universe UniverseConfig `json:"universe" yaml:"universe"`
	ORB      ORBConfig      `json:"orb" yaml:"orb"`
	Scanner  ScannerConfig  `json:"scanner" yaml:"scanner"`
	Bhavcopy BhavcopyConfig `json:"bhavcopy" yaml:"bhavcopy"`
}

// JournalConfig contains trade journal parameters.
type JournalConfig struct {
	OrdersFile      string   `json:"orders_file" yaml:"orders_file"`
	StateDir        string   `json:"state_dir" yaml:"state_dir"`
	ArchiveDB       string   `json:"archive_db" yaml:"archive_db"`
	Strategies      []string `json:"strategies" yaml:"strategies"`
	StrategyCodes   []string `json:"strategy_codes" yaml:"strategy_codes"`
	DefaultStrategy string   `json:"default_strategy" yaml:"default_strategy"`
}

// UniverseConfig locates the tradable-symbol lookup table.
type UniverseConfig struct {
	JSONFile string `json:"json_file" yaml:"json_file"`
	CSVFile  string `json:"csv_file" yaml:"csv_file"`
}

// ORBConfig contains opening-range-breakout scanner parameters.
type ORBConfig struct {
	Risk        int     `json:"risk" yaml:"risk"`
	LongStocks  int     `json:"long_stocks" yaml:"long_stocks"`
	ShortStocks int     `json:"short_stocks" yaml:"short_stocks"`
	LowerPrice  float64 `json:"lower_price" yaml:"lower_price"`
	UpperPrice  float64 `json:"upper_price" yaml:"upper_price"`
	CSVPrefix   string  `json:"csv_prefix" yaml:"csv_prefix"`
}

// ScannerConfig contains candlestick scanner parameters.
type ScannerConfig struct {
	TailBodyRatio  float64  `json:"tail_body_ratio" yaml:"tail_body_ratio"`
	MarubozuShadow float64  `json:"marubozu_shadow" yaml:"marubozu_shadow"`
	LowerPrice     float64  `json:"lower_price" yaml:"lower_price"`
	UpperPrice     float64  `json:"upper_price" yaml:"upper_price"`
	CSVPrefix      string   `json:"csv_prefix" yaml:"csv_prefix"`
	Holidays       []string `json:"holidays" yaml:"holidays"`
}

// BhavcopyConfig contains settlement file download parameters.
type BhavcopyConfig struct {
	Dir            string `json:"dir" yaml:"dir"`
	BaseURL        string `json:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Journal.OrdersFile == "" {
		return fmt.Errorf("journal.orders_file is required")
	}
	if c.Journal.StateDir == "" {
		return fmt.Errorf("journal.state_dir is required")
	}
	if len(c.Journal.Strategies) == 0 {
		return fmt.Errorf("journal.strategies must list at least one strategy")
	}
	if len(c.Journal.Strategies) != len(c.Journal.StrategyCodes) {
		return fmt.Errorf("journal.strategy_codes must match journal.strategies (%d names, %d codes)",
			len(c.Journal.Strategies), len(c.Journal.StrategyCodes))
	}
	if c.Journal.DefaultStrategy == "" {
		return fmt.Errorf("journal.default_strategy is required")
	}
	if c.Universe.JSONFile == "" {
		return fmt.Errorf("universe.json_file is required")
	}
	if c.ORB.Risk <= 0 {
		return fmt.Errorf("orb.risk must be positive")
	}
	if c.ORB.LongStocks <= 0 || c.ORB.ShortStocks <= 0 {
		return fmt.Errorf("orb.long_stocks and orb.short_stocks must be positive")
	}
	if c.ORB.LowerPrice <= 0 || c.ORB.UpperPrice <= c.ORB.LowerPrice {
		return fmt.Errorf("orb price band must satisfy 0 < lower_price < upper_price")
	}
	if c.Scanner.TailBodyRatio <= 0 {
		return fmt.Errorf("scanner.tail_body_ratio must be positive")
	}
	if c.Scanner.MarubozuShadow <= 0 || c.Scanner.MarubozuShadow >= 1 {
		return fmt.Errorf("scanner.marubozu_shadow must be between 0 and 1")
	}
	if c.Scanner.LowerPrice <= 0 || c.Scanner.UpperPrice <= c.Scanner.LowerPrice {
		return fmt.Errorf("scanner price band must satisfy 0 < lower_price < upper_price")
	}
	if c.Bhavcopy.Dir == "" {
		return fmt.Errorf("bhavcopy.dir is required")
	}
	if c.Bhavcopy.BaseURL == "" {
		return fmt.Errorf("bhavcopy.base_url is required")
	}
	if c.Bhavcopy.TimeoutSeconds <= 0 {
		return fmt.Errorf("bhavcopy.timeout_seconds must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Journal: JournalConfig{
			OrdersFile:      "data/orders.csv",
			StateDir:        "data/journal",
			ArchiveDB:       "data/journal/master.sqlite",
			Strategies:      []string{"ORB", "PULLBACK", "TREND"},
			StrategyCodes:   []string{"O", "P", "T"},
			DefaultStrategy: "MISC",
		},
		Universe: UniverseConfig{
			JSONFile: "data/FO.json",
			CSVFile:  "data/FO.csv",
		},
		ORB: ORBConfig{
			Risk:        100,
			LongStocks:  5,
			ShortStocks: 5,
			LowerPrice:  30,
			UpperPrice:  3000,
			CSVPrefix:   "MW-SECURITIES-IN-F&O-",
		},
		Scanner: ScannerConfig{
			TailBodyRatio:  3,
			MarubozuShadow: 0.07,
			LowerPrice:     30,
			UpperPrice:     10000,
			CSVPrefix:      "MW-SECURITIES-IN-F&O-",
			Holidays:       nil,
		},
		Bhavcopy: BhavcopyConfig{
			Dir:            "data/scanner",
			BaseURL:        "https://archives.nseindia.com/content/historical/EQUITIES",
			TimeoutSeconds: 45,
		},
	}
}
