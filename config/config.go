// Package config loads and validates backtester configuration files.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/strategies"
)

// Config is the complete configuration for one backtest invocation.
type Config struct {
	Backtest BacktestConfig `yaml:"backtest"`
	Strategy StrategyConfig `yaml:"strategy"`
	Data     DataConfig     `yaml:"data"`
	Journal  JournalConfig  `yaml:"journal"`
}

// BacktestConfig mirrors engine.Config in file form.
type BacktestConfig struct {
	InitialCapital    float64 `yaml:"initial_capital"`
	Commission        float64 `yaml:"commission"`
	Slippage          float64 `yaml:"slippage"`
	MarginRequirement float64 `yaml:"margin_requirement"`
	MaxPositionSize   float64 `yaml:"max_position_size"`
	AllowShorting     bool    `yaml:"allow_shorting"`
}

// StrategyConfig names a built-in strategy and its parameters. Fields that a
// strategy does not use are ignored.
type StrategyConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`

	Quantity   float64 `yaml:"quantity,omitempty"`
	FastPeriod int     `yaml:"fast_period,omitempty"`
	SlowPeriod int     `yaml:"slow_period,omitempty"`
	Lookback   int     `yaml:"lookback,omitempty"`
	ZThreshold float64 `yaml:"z_threshold,omitempty"`
	ZExit      float64 `yaml:"z_exit,omitempty"`
	RSIPeriod  int     `yaml:"rsi_period,omitempty"`
	Oversold   float64 `yaml:"oversold,omitempty"`
	Overbought float64 `yaml:"overbought,omitempty"`
}

// DataConfig points at the bar dataset.
type DataConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "csv" or "parquet"
}

// JournalConfig selects the persistence backend. An empty type lets the CLI
// pick its default journal; "none" disables journaling.
type JournalConfig struct {
	Type       string `yaml:"type"` // "", "none", "csv" or "sqlite"
	DBPath     string `yaml:"db_path,omitempty"`
	TradesFile string `yaml:"trades_file,omitempty"`
	EquityFile string `yaml:"equity_file,omitempty"`
}

// Default returns a configuration with the standard backtest parameters and
// no journaling.
func Default() *Config {
	return &Config{
		Backtest: BacktestConfig{
			InitialCapital:    100_000,
			Commission:        0.001,
			Slippage:          0.0005,
			MarginRequirement: 1.0,
			MaxPositionSize:   0.1,
			AllowShorting:     true,
		},
		Strategy: StrategyConfig{
			Name:       "sma-cross",
			FastPeriod: 10,
			SlowPeriod: 30,
		},
		Data: DataConfig{
			Format: "csv",
		},
		Journal: JournalConfig{},
	}
}

// LoadFromFile loads a YAML configuration, layered over Default so omitted
// keys keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before a run is built from it.
func (c *Config) Validate() error {
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.Commission < 0 {
		return fmt.Errorf("backtest.commission must not be negative")
	}
	if c.Backtest.Slippage < 0 {
		return fmt.Errorf("backtest.slippage must not be negative")
	}
	if c.Backtest.MaxPositionSize <= 0 || c.Backtest.MaxPositionSize > 1 {
		return fmt.Errorf("backtest.max_position_size must be in (0, 1]")
	}

	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	found := false
	for _, name := range strategies.Names() {
		if name == strings.ToLower(strings.TrimSpace(c.Strategy.Name)) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown strategy: %s", c.Strategy.Name)
	}

	switch c.Data.Format {
	case "", "csv", "parquet":
	default:
		return fmt.Errorf("data.format must be 'csv' or 'parquet'")
	}

	switch c.Journal.Type {
	case "", "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv journal")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// EngineConfig converts the file form into the engine's config value.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		InitialCapital:    c.Backtest.InitialCapital,
		Commission:        c.Backtest.Commission,
		Slippage:          c.Backtest.Slippage,
		MarginRequirement: c.Backtest.MarginRequirement,
		MaxPositionSize:   c.Backtest.MaxPositionSize,
		AllowShorting:     c.Backtest.AllowShorting,
	}
}

// StrategyParams converts the strategy section into strategy parameters.
func (c *Config) StrategyParams() strategies.Params {
	s := c.Strategy
	return strategies.Params{
		Symbol:     s.Symbol,
		Quantity:   s.Quantity,
		FastPeriod: s.FastPeriod,
		SlowPeriod: s.SlowPeriod,
		Lookback:   s.Lookback,
		ZThreshold: s.ZThreshold,
		ZExit:      s.ZExit,
		RSIPeriod:  s.RSIPeriod,
		Oversold:   s.Oversold,
		Overbought: s.Overbought,
	}
}
