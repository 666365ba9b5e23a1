// Package cli implements the backtester command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "backtester",
		Short:         "Replay historical bars through trading strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "./backtester.sqlite", "SQLite journal database")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")

	cmd.AddCommand(
		newRunCmd(opts),
		newReportCmd(opts),
		newStrategiesCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("backtester (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newLogger builds a console logger at the requested level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
