// Package config loads the tradoverse YAML configuration and applies
// environment variable overrides.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the tradoverse backtester.
type Config struct {
	Storage  Storage  `yaml:"storage"`
	Alpaca   Alpaca   `yaml:"alpaca"`
	Logging  Logging  `yaml:"logging"`
	Backtest Backtest `yaml:"backtest"`
	Fetch    Fetch    `yaml:"fetch"`
}

// Storage holds paths for local bar data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
// When the key or secret is empty the engine falls back to synthetic data.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Backtest defines simulation cost and sizing parameters.
type Backtest struct {
	InitialCapital   float64 `yaml:"initial_capital"`
	Commission       float64 `yaml:"commission"`        // fraction per trade, 0.001 = 0.1%
	Slippage         float64 `yaml:"slippage"`          // fraction per fill, 0.0005 = 0.05%
	PositionFraction float64 `yaml:"position_fraction"` // fraction of cash per new position
}

// Fetch controls market-data acquisition behaviour.
type Fetch struct {
	MaxWorkers      int `yaml:"max_workers"`
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
	MaxRetries      int `yaml:"max_retries"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/tradoverse.db",
		},
		Logging: Logging{Level: "info"},
		Backtest: Backtest{
			InitialCapital:   100000,
			Commission:       0.001,
			Slippage:         0.0005,
			PositionFraction: 0.10,
		},
		Fetch: Fetch{
			MaxWorkers:      4,
			RateLimitPerMin: 200,
			MaxRetries:      3,
		},
	}
}

// Load reads the YAML configuration file at the given path, parses it over
// the defaults, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, but a missing file is not an error: the
// defaults (plus environment overrides) are used instead.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		applyEnvOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Validate rejects configurations the engine refuses to run with. Invalid
// configuration is the only error class surfaced before a simulation starts.
func (c *Config) Validate() error {
	if c.Backtest.InitialCapital <= 0 {
		return errors.New("backtest.initial_capital must be positive")
	}
	if c.Backtest.Commission < 0 || c.Backtest.Slippage < 0 {
		return errors.New("backtest.commission and backtest.slippage must not be negative")
	}
	if c.Backtest.PositionFraction <= 0 || c.Backtest.PositionFraction > 1 {
		return errors.New("backtest.position_fraction must be in (0, 1]")
	}
	if c.Fetch.MaxWorkers < 1 {
		return errors.New("fetch.max_workers must be at least 1")
	}
	return nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Standard Alpaca env vars (highest priority — canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}
