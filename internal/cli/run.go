package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/backtester/config"
	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/journal"
	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/pkg/id"
	"github.com/rustyeddy/backtester/strategies"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		dataPath string
		format   string
		strategy string
		symbol   string
		capital  float64
		noStore  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a backtest over a bar dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(root.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg := config.Default()
			if root.ConfigPath != "" {
				cfg, err = config.LoadFromFile(root.ConfigPath)
				if err != nil {
					return err
				}
			}

			// Flags override the config file.
			if cmd.Flags().Changed("data") {
				cfg.Data.Path = dataPath
			}
			if cmd.Flags().Changed("format") {
				cfg.Data.Format = format
			}
			if cmd.Flags().Changed("strategy") {
				cfg.Strategy.Name = strategy
			}
			if cmd.Flags().Changed("symbol") {
				cfg.Strategy.Symbol = symbol
			}
			if cmd.Flags().Changed("capital") {
				cfg.Backtest.InitialCapital = capital
			}

			if cfg.Data.Path == "" {
				return fmt.Errorf("run: a dataset is required (--data or data.path in config)")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			bars, err := loadBars(cfg.Data)
			if err != nil {
				return err
			}
			if cfg.Strategy.Symbol == "" && len(bars) > 0 {
				cfg.Strategy.Symbol = bars[0].Symbol
			}

			strat, err := strategies.New(cfg.Strategy.Name, cfg.StrategyParams())
			if err != nil {
				return err
			}

			e := engine.New(cfg.EngineConfig())
			e.SetLogger(log)
			if err := e.LoadBars(bars); err != nil {
				return err
			}
			e.SetStrategy(strat)

			res, err := e.Run()
			if err != nil {
				return err
			}

			runID := id.New()
			PrintResult(os.Stdout, runID, strat.Name(), cfg.Data.Path, cfg.Backtest.InitialCapital, res)

			if !noStore {
				if err := storeResult(cfg, root, runID, strat.Name(), res); err != nil {
					log.Warn("journal write failed", zap.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "path to bar dataset (CSV or Parquet)")
	cmd.Flags().StringVar(&format, "format", "csv", "dataset format: csv|parquet")
	cmd.Flags().StringVar(&strategy, "strategy", "sma-cross", "strategy name (see 'backtester strategies')")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol to trade (default: first symbol in dataset)")
	cmd.Flags().Float64Var(&capital, "capital", 100_000, "starting cash")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "skip writing the run to the journal")

	return cmd
}

func loadBars(data config.DataConfig) ([]market.Bar, error) {
	format := data.Format
	if format == "" {
		switch filepath.Ext(data.Path) {
		case ".parquet":
			format = "parquet"
		default:
			format = "csv"
		}
	}

	switch format {
	case "parquet":
		return market.ReadParquet(data.Path)
	default:
		return market.ReadCSV(data.Path)
	}
}

// storeResult journals the run. The backend comes from the config file; an
// unset journal section falls back to the root --db SQLite journal.
func storeResult(cfg *config.Config, root *rootOptions, runID, strategy string, res *engine.Result) error {
	var (
		j   journal.Journal
		err error
	)

	switch cfg.Journal.Type {
	case "none":
		return nil
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		j, err = journal.NewSQLite(root.DBPath)
	}
	if err != nil {
		return err
	}
	defer j.Close()

	return journal.RecordResult(j, journal.RunRecord{
		RunID:          runID,
		Strategy:       strategy,
		Dataset:        cfg.Data.Path,
		InitialCapital: cfg.Backtest.InitialCapital,
	}, res)
}
