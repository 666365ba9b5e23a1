package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// Compile-time interface check.
var _ Journal = (*CSV)(nil)

// CSV journals trades and equity to two CSV files. Run summaries are not
// persisted by this backend; use SQLite when run history matters.
type CSV struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"trade_id", "run_id", "symbol", "quantity", "entry_price", "exit_price", "entry_time", "exit_time", "pnl", "return_pct"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "equity", "cash"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Symbol,
		f(t.Quantity),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		f(t.PnL),
		f(t.ReturnPct),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Equity),
		f(e.Cash),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

// RecordRun is a no-op for the CSV backend.
func (j *CSV) RecordRun(RunRecord) error { return nil }

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
