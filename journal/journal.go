// Package journal persists backtest output: completed trades, per-bar equity
// snapshots, and run summaries. SQLite and CSV backends are provided.
package journal

import "time"

// TradeRecord is one realized round-trip as stored by a journal.
type TradeRecord struct {
	TradeID    string
	RunID      string
	Symbol     string
	Quantity   float64
	EntryPrice float64
	ExitPrice  float64
	EntryTime  time.Time
	ExitTime   time.Time
	PnL        float64
	ReturnPct  float64
}

// EquitySnapshot is one bar-boundary equity observation.
type EquitySnapshot struct {
	RunID  string
	Time   time.Time
	Equity float64
	Cash   float64
}

// RunRecord summarizes a finished backtest run.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Strategy string
	Dataset  string

	InitialCapital float64
	FinalEquity    float64

	TotalReturn  float64
	MaxDrawdown  float64
	SharpeRatio  float64
	Trades       int
	WinRate      float64
	ProfitFactor float64
}

// Journal records backtest output. Implementations are not required to be
// safe for concurrent use; each run writes from a single goroutine.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	RecordRun(RunRecord) error
	Close() error
}
