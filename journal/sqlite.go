package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Compile-time interface check.
var _ Journal = (*SQLite)(nil)

// SQLite journals to a local SQLite database. The schema is created on open.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, quantity, entry_price, exit_price, entry_time, exit_time, pnl, return_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Symbol, t.Quantity, t.EntryPrice,
		t.ExitPrice, t.EntryTime, t.ExitTime, t.PnL, t.ReturnPct,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, time, equity, cash)
		VALUES (?, ?, ?, ?)`,
		e.RunID, e.Time, e.Equity, e.Cash,
	)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, dataset, initial_capital, final_equity,
		 total_return, max_drawdown, sharpe_ratio, trades, win_rate, profit_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Dataset, r.InitialCapital, r.FinalEquity,
		r.TotalReturn, r.MaxDrawdown, r.SharpeRatio, r.Trades, r.WinRate, r.ProfitFactor,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
