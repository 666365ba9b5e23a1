package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/market"
)

// scriptStrategy plays a fixed order script keyed by bar index.
type scriptStrategy struct {
	script map[int][]Order
}

func (s *scriptStrategy) Name() string { return "script" }

func (s *scriptStrategy) OnBar(v *View, idx int, bar market.Bar) []Order {
	return s.script[idx]
}

// testBars builds one daily bar per close, in timestamp order.
func testBars(closes ...float64) []market.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Symbol: "SPY",
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000,
		}
	}
	return bars
}

func TestRunPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("no data", func(t *testing.T) {
		t.Parallel()

		e := New(DefaultConfig())
		e.SetStrategy(&scriptStrategy{})

		res, err := e.Run()
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), "no data")
	})

	t.Run("no strategy", func(t *testing.T) {
		t.Parallel()

		e := New(DefaultConfig())
		require.NoError(t, e.LoadBars(testBars(100, 101)))

		res, err := e.Run()
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), "no strategy")
	})
}

func TestLoadBarsRejectsBadData(t *testing.T) {
	t.Parallel()

	bars := testBars(100, 101)
	bars[1].Symbol = ""

	e := New(DefaultConfig())
	assert.Error(t, e.LoadBars(bars))
}

func TestRunBuyAndHold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Commission = 0
	cfg.Slippage = 0

	e := New(cfg)
	require.NoError(t, e.LoadBars(testBars(50, 55, 60)))
	e.SetStrategy(&scriptStrategy{script: map[int][]Order{
		0: {MarketOrder("SPY", Buy, 100)},
	}})

	res, err := e.Run()
	require.NoError(t, err)

	require.Len(t, res.EquityCurve, 3)
	assert.InDelta(t, 100_000, res.EquityCurve[0].Equity, 1e-9)
	assert.InDelta(t, 100_500, res.EquityCurve[1].Equity, 1e-9)
	assert.InDelta(t, 101_000, res.EquityCurve[2].Equity, 1e-9)

	assert.InDelta(t, 101_000, res.FinalEquity, 1e-9)
	assert.InDelta(t, 0.01, res.Metrics.TotalReturn, 1e-9)

	// Cash stays constant after the single buy.
	assert.InDelta(t, 95_000, res.EquityCurve[2].Cash, 1e-9)

	// In market from the buy bar onward.
	assert.InDelta(t, 1.0, res.Metrics.ExposureTime, 1e-9)
}

func TestRunRoundTripTrade(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Commission = 0
	cfg.Slippage = 0

	e := New(cfg)
	bars := testBars(100, 110)
	require.NoError(t, e.LoadBars(bars))
	e.SetStrategy(&scriptStrategy{script: map[int][]Order{
		0: {MarketOrder("SPY", Buy, 10)},
		1: {MarketOrder("SPY", Sell, 10)},
	}})

	res, err := e.Run()
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	tr := res.Trades[0]
	assert.InDelta(t, 100.0, tr.EntryPrice, 1e-9)
	assert.InDelta(t, 110.0, tr.ExitPrice, 1e-9)
	assert.InDelta(t, 100.0, tr.PnL, 1e-9)
	assert.InDelta(t, 0.10, tr.ReturnPct, 1e-9)
	assert.Equal(t, bars[0].Time, tr.EntryTime)
	assert.Equal(t, bars[1].Time, tr.ExitTime)
}

func TestRunRejectedOrdersShortenTheLog(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.InitialCapital = 1_000

	e := New(cfg)
	require.NoError(t, e.LoadBars(testBars(50, 51)))
	e.SetStrategy(&scriptStrategy{script: map[int][]Order{
		0: {
			MarketOrder("SPY", Buy, 100), // ~5000, rejected
			MarketOrder("SPY", Buy, 10),  // ~500, fills
		},
	}})

	res, err := e.Run()
	require.NoError(t, err)

	// Two submitted, one executed.
	require.Len(t, res.Orders, 1)
	assert.InDelta(t, 10.0, res.Orders[0].Quantity, 1e-9)
	assert.True(t, res.Orders[0].Filled)
}

func TestRunIsRepeatable(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	require.NoError(t, e.LoadBars(testBars(100, 105, 98, 110, 102)))
	e.SetStrategy(&scriptStrategy{script: map[int][]Order{
		0: {MarketOrder("SPY", Buy, 50)},
		2: {MarketOrder("SPY", Sell, 50)},
		3: {MarketOrder("SPY", Buy, 20)},
	}})

	first, err := e.Run()
	require.NoError(t, err)

	second, err := e.Run()
	require.NoError(t, err)

	// A rerun starts from a fresh ledger and reproduces the first run.
	assert.Equal(t, first.FinalEquity, second.FinalEquity)
	assert.Len(t, second.Trades, len(first.Trades))
	assert.Len(t, second.Orders, len(first.Orders))
	assert.Len(t, second.EquityCurve, len(first.EquityCurve))
	assert.Equal(t, first.Metrics.TotalReturn, second.Metrics.TotalReturn)
}

func TestRunStampsOrderTime(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	bars := testBars(100, 105)
	require.NoError(t, e.LoadBars(bars))
	e.SetStrategy(&scriptStrategy{script: map[int][]Order{
		1: {MarketOrder("SPY", Buy, 10)},
	}})

	res, err := e.Run()
	require.NoError(t, err)

	require.Len(t, res.Orders, 1)
	assert.Equal(t, bars[1].Time, res.Orders[0].Time)
	assert.Equal(t, bars[1].Time, res.Orders[0].FillTime)
}

func TestViewHistory(t *testing.T) {
	t.Parallel()

	e := New(DefaultConfig())
	require.NoError(t, e.LoadBars(testBars(100, 101, 102, 103, 104)))

	v := &View{e: e}

	t.Run("full lookback", func(t *testing.T) {
		t.Parallel()

		h := v.History(3, 4)
		require.Len(t, h, 3)
		assert.Equal(t, 102.0, h[0].Close)
		assert.Equal(t, 104.0, h[2].Close)
	})

	t.Run("clamped at the start", func(t *testing.T) {
		t.Parallel()

		h := v.History(10, 2)
		require.Len(t, h, 3)
		assert.Equal(t, 100.0, h[0].Close)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, v.History(3, -1))
		assert.Nil(t, v.History(3, 5))
	})
}
