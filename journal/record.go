package journal

import (
	"time"

	"github.com/rustyeddy/backtester/engine"
)

// RecordResult persists a finished run: the summary row, every trade, and
// every equity point, all tagged with run.RunID. The run record's metric
// fields are filled from the result.
func RecordResult(j Journal, run RunRecord, res *engine.Result) error {
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}
	run.FinalEquity = res.FinalEquity
	run.TotalReturn = res.Metrics.TotalReturn
	run.MaxDrawdown = res.Metrics.MaxDrawdown
	run.SharpeRatio = res.Metrics.SharpeRatio
	run.Trades = res.Metrics.NumTrades
	run.WinRate = res.Metrics.WinRate
	run.ProfitFactor = res.Metrics.ProfitFactor

	if err := j.RecordRun(run); err != nil {
		return err
	}

	for _, t := range res.Trades {
		if err := j.RecordTrade(TradeRecord{
			TradeID:    t.ID,
			RunID:      run.RunID,
			Symbol:     t.Symbol,
			Quantity:   t.Quantity,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			EntryTime:  t.EntryTime,
			ExitTime:   t.ExitTime,
			PnL:        t.PnL,
			ReturnPct:  t.ReturnPct,
		}); err != nil {
			return err
		}
	}

	for _, p := range res.EquityCurve {
		if err := j.RecordEquity(EquitySnapshot{
			RunID:  run.RunID,
			Time:   p.Time,
			Equity: p.Equity,
			Cash:   p.Cash,
		}); err != nil {
			return err
		}
	}

	return nil
}
