package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a stored run summary by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, dataset, initial_capital, final_equity,
		       total_return, max_drawdown, sharpe_ratio, trades, win_rate, profit_factor
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID,
		&r.Created,
		&r.Strategy,
		&r.Dataset,
		&r.InitialCapital,
		&r.FinalEquity,
		&r.TotalReturn,
		&r.MaxDrawdown,
		&r.SharpeRatio,
		&r.Trades,
		&r.WinRate,
		&r.ProfitFactor,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns stored run summaries, most recent first. ULIDs sort by
// creation time, so ordering by run_id descending is chronological.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, dataset, initial_capital, final_equity,
		       total_return, max_drawdown, sharpe_ratio, trades, win_rate, profit_factor
		FROM runs
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID,
			&r.Created,
			&r.Strategy,
			&r.Dataset,
			&r.InitialCapital,
			&r.FinalEquity,
			&r.TotalReturn,
			&r.MaxDrawdown,
			&r.SharpeRatio,
			&r.Trades,
			&r.WinRate,
			&r.ProfitFactor,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesByRun returns a run's trades in exit-time order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, symbol, quantity, entry_price, exit_price, entry_time, exit_time, pnl, return_pct
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_time ASC, trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.TradeID,
			&t.RunID,
			&t.Symbol,
			&t.Quantity,
			&t.EntryPrice,
			&t.ExitPrice,
			&t.EntryTime,
			&t.ExitTime,
			&t.PnL,
			&t.ReturnPct,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity, cash
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.RunID, &e.Time, &e.Equity, &e.Cash); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
