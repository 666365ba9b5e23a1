package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/journal"
)

// PrintResult writes a human-readable summary of a finished run.
func PrintResult(w io.Writer, runID, strategy, dataset string, initialCapital float64, res *engine.Result) {
	m := res.Metrics

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Run ID:        %s\n", runID)
	fmt.Fprintf(w, "Strategy:      %s\n", strategy)
	fmt.Fprintf(w, "Dataset:       %s\n", dataset)

	if n := len(res.EquityCurve); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Period")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Start:         %s\n", res.EquityCurve[0].Time.Format(time.RFC3339))
		fmt.Fprintf(w, "End:           %s\n", res.EquityCurve[n-1].Time.Format(time.RFC3339))
		fmt.Fprintf(w, "Bars:          %d\n", n)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital: %.2f\n", initialCapital)
	fmt.Fprintf(w, "Final Equity:  %.2f\n", res.FinalEquity)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", m.TotalReturn*100)
	fmt.Fprintf(w, "Annualized:    %.2f%%\n", m.AnnualizedReturn*100)
	fmt.Fprintf(w, "Volatility:    %.2f%%\n", m.Volatility*100)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", m.MaxDrawdown*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", m.SharpeRatio)
	fmt.Fprintf(w, "Sortino:       %.2f\n", m.SortinoRatio)
	fmt.Fprintf(w, "Calmar:        %.2f\n", m.CalmarRatio)
	fmt.Fprintf(w, "Exposure:      %.1f%%\n", m.ExposureTime*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", m.NumTrades)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", m.WinRate*100)
	fmt.Fprintf(w, "Avg Trade:     %.2f\n", m.AvgTrade)
	fmt.Fprintf(w, "Avg Win/Loss:  %.2f / %.2f\n", m.AvgWin, m.AvgLoss)
	fmt.Fprintf(w, "Best/Worst:    %.2f / %.2f\n", m.LargestWin, m.LargestLoss)
	fmt.Fprintf(w, "Profit Factor: %s\n", formatProfitFactor(m.ProfitFactor))
	fmt.Fprintln(w)
}

// printRun writes the stored summary of a past run.
func printRun(w io.Writer, r journal.RunRecord, trades []journal.TradeRecord) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Run")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Created:       %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(w, "Strategy:      %s\n", r.Strategy)
	fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Start Capital: %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Equity:  %.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", r.TotalReturn*100)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.SharpeRatio)
	fmt.Fprintf(w, "Trades:        %d\n", r.Trades)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", r.WinRate*100)
	fmt.Fprintf(w, "Profit Factor: %s\n", formatProfitFactor(r.ProfitFactor))

	if len(trades) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Trades")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, t := range trades {
			fmt.Fprintf(w, "%s  %-8s qty %.0f  %.2f -> %.2f  pnl %.2f (%.2f%%)\n",
				t.ExitTime.Format("2006-01-02"), t.Symbol, t.Quantity,
				t.EntryPrice, t.ExitPrice, t.PnL, t.ReturnPct*100)
		}
	}
	fmt.Fprintln(w)
}

func formatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf)
}

func newReportCmd(root *rootOptions) *cobra.Command {
	var withTrades bool

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Show stored backtest runs",
		Long:  "With no argument, lists stored runs. With a run ID, prints that run's summary.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(root.DBPath)
			if err != nil {
				return err
			}
			defer j.Close()

			if len(args) == 0 {
				runs, err := j.ListRuns()
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Println("no stored runs")
					return nil
				}
				for _, r := range runs {
					fmt.Printf("%s  %-16s return %7.2f%%  trades %4d  %s\n",
						r.RunID, r.Strategy, r.TotalReturn*100, r.Trades, r.Dataset)
				}
				return nil
			}

			r, err := j.GetRun(args[0])
			if err != nil {
				return err
			}

			var trades []journal.TradeRecord
			if withTrades {
				trades, err = j.ListTradesByRun(r.RunID)
				if err != nil {
					return err
				}
			}

			printRun(os.Stdout, r, trades)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withTrades, "trades", false, "include the trade list")
	return cmd
}
