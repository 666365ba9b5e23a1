// Package engine implements the event-driven backtest core: the bar-replay
// loop, the order fill simulator, position/ledger accounting, and result
// compilation.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/backtester/market"
	"github.com/rustyeddy/backtester/metrics"
)

// Strategy is invoked once per bar, in bar order, synchronously. It must not
// hold on to the view past the call and must not mutate engine state except
// through the orders it returns.
type Strategy interface {
	Name() string
	OnBar(v *View, idx int, bar market.Bar) []Order
}

// Result is the complete output of one run. It is read-only once compiled.
type Result struct {
	EquityCurve []EquityPoint
	Trades      []Trade
	Orders      []*Order // executed orders only, in fill order
	Metrics     *metrics.Report
	FinalEquity float64
}

// Engine replays a bar sequence through a strategy against an owned ledger.
// A single Engine owns its ledger exclusively; independent runs need
// independent engines.
type Engine struct {
	cfg Config
	log *zap.Logger

	data     []market.Bar
	strategy Strategy

	ledger *Ledger
	orders []*Order
	trades []Trade
	equity []EquityPoint

	inMarketBars int
}

// New creates an engine with the given configuration. Logging is off by
// default; use SetLogger to see order rejections.
func New(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		log: zap.NewNop(),
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	e.log = log
}

// Config returns the engine's configuration value.
func (e *Engine) Config() Config { return e.cfg }

// LoadBars binds the bar sequence. Bars are sorted by timestamp (stable, so
// same-timestamp bars across symbols keep their order) and validated:
// missing fields and duplicate symbol-timestamp pairs fail here, before any
// bar is processed.
func (e *Engine) LoadBars(bars []market.Bar) error {
	sorted := make([]market.Bar, len(bars))
	copy(sorted, bars)
	market.SortBars(sorted)

	if err := market.ValidateBars(sorted); err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	e.data = sorted
	e.log.Info("loaded bars", zap.Int("count", len(sorted)))
	return nil
}

// SetStrategy binds the strategy callback.
func (e *Engine) SetStrategy(s Strategy) {
	e.strategy = s
}

// reset returns the engine to its initial state so a prior run's results
// never leak into a new one.
func (e *Engine) reset() {
	e.ledger = NewLedger(e.cfg.InitialCapital)
	e.orders = nil
	e.trades = nil
	e.equity = make([]EquityPoint, 0, len(e.data))
	e.inMarketBars = 0
}

// Run executes the backtest. Preconditions are checked before the first bar:
// a violation returns a configuration error and nothing partial.
//
// Per bar, in order: mark positions to the close, invoke the strategy,
// submit its orders to the fill simulator in list order, snapshot equity.
// After the final bar the equity curve, trade log, and metrics are compiled
// into the result; no further state changes are permitted.
func (e *Engine) Run() (*Result, error) {
	if len(e.data) == 0 {
		return nil, fmt.Errorf("engine: no data loaded")
	}
	if e.strategy == nil {
		return nil, fmt.Errorf("engine: no strategy set")
	}

	e.reset()
	e.log.Info("starting backtest",
		zap.String("strategy", e.strategy.Name()),
		zap.Int("bars", len(e.data)))

	view := &View{e: e}

	for idx, bar := range e.data {
		// 1. Mark open positions to this bar's close. Equity is only
		// meaningful after this step.
		e.ledger.MarkToMarket(bar.Close)

		// 2. Strategy decides.
		orders := e.strategy.OnBar(view, idx, bar)

		// 3. Fills happen in list order; each order sees the ledger state
		// left by the previous fill within the same bar.
		for i := range orders {
			o := orders[i]
			o.Time = bar.Time
			if e.executeOrder(&o, bar) {
				e.orders = append(e.orders, &o)
			}
		}

		// 4. Snapshot post-fill equity.
		if e.ledger.InMarket() {
			e.inMarketBars++
		}
		e.equity = append(e.equity, EquityPoint{
			Time:   bar.Time,
			Equity: e.ledger.Equity(),
			Cash:   e.ledger.Cash(),
		})
	}

	return e.compile(), nil
}

// compile assembles the run's result set and computes metrics.
func (e *Engine) compile() *Result {
	values := make([]float64, len(e.equity))
	for i, p := range e.equity {
		values[i] = p.Equity
	}
	pnl := make([]float64, len(e.trades))
	for i, t := range e.trades {
		pnl[i] = t.PnL
	}

	report := metrics.Compute(values, pnl, metrics.DefaultParams())
	if len(e.equity) > 0 {
		report.ExposureTime = float64(e.inMarketBars) / float64(len(e.equity))
	}

	final := e.cfg.InitialCapital
	if len(e.equity) > 0 {
		final = e.equity[len(e.equity)-1].Equity
	}

	return &Result{
		EquityCurve: e.equity,
		Trades:      e.trades,
		Orders:      e.orders,
		Metrics:     report,
		FinalEquity: final,
	}
}
