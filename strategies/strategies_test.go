package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/market"
)

func testBars(symbol string, closes ...float64) []market.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Symbol: symbol,
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

func runStrategy(t *testing.T, s engine.Strategy, closes ...float64) *engine.Result {
	t.Helper()

	cfg := engine.DefaultConfig()
	cfg.Commission = 0
	cfg.Slippage = 0

	e := engine.New(cfg)
	require.NoError(t, e.LoadBars(testBars("SPY", closes...)))
	e.SetStrategy(s)

	res, err := e.Run()
	require.NoError(t, err)
	return res
}

func TestNewByName(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		s, err := New(name, Params{Symbol: "SPY"})
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}

	// Case and punctuation are forgiven.
	s, err := New(" BuyHold ", Params{Symbol: "SPY"})
	require.NoError(t, err)
	assert.Equal(t, "buy-hold", s.Name())

	_, err = New("martingale", Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}

func TestBuyHold(t *testing.T) {
	t.Parallel()

	t.Run("fixed quantity buys once", func(t *testing.T) {
		t.Parallel()

		res := runStrategy(t, NewBuyHold("SPY", 100), 50, 55, 60)

		require.Len(t, res.Orders, 1)
		assert.Equal(t, engine.Buy, res.Orders[0].Side)
		assert.Equal(t, 100.0, res.Orders[0].Quantity)
		assert.Empty(t, res.Trades, "nothing ever closes")
		assert.InDelta(t, 101_000, res.FinalEquity, 1e-9)
	})

	t.Run("zero quantity sizes from equity", func(t *testing.T) {
		t.Parallel()

		res := runStrategy(t, NewBuyHold("SPY", 0), 50, 55)

		require.Len(t, res.Orders, 1)
		// floor(100000 * 0.1 / 50)
		assert.Equal(t, 200.0, res.Orders[0].Quantity)
	})

	t.Run("ignores other symbols", func(t *testing.T) {
		t.Parallel()

		res := runStrategy(t, NewBuyHold("AAPL", 100), 50, 55)
		assert.Empty(t, res.Orders)
	})
}

func TestSMACross(t *testing.T) {
	t.Parallel()

	// Flat warmup, a jump to force the fast average above the slow one,
	// then a slide to force it back below.
	res := runStrategy(t, NewSMACross("SPY", 2, 3),
		10, 10, 10, 14, 6, 2)

	require.NotEmpty(t, res.Orders)

	// First order is the long entry on the upward cross.
	assert.Equal(t, engine.Buy, res.Orders[0].Side)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), res.Orders[0].Time)

	// The downward cross closes the long and opens a short.
	last := res.Orders[len(res.Orders)-1]
	assert.Equal(t, engine.Sell, last.Side)
	require.Len(t, res.Trades, 1)
}

func TestSMACrossNoEntryWithoutCross(t *testing.T) {
	t.Parallel()

	// Fast stays above slow the whole time: no cross, no orders.
	res := runStrategy(t, NewSMACross("SPY", 2, 3),
		10, 11, 12, 13, 14, 15)
	assert.Empty(t, res.Orders)
}

func TestMeanReversion(t *testing.T) {
	t.Parallel()

	s := NewMeanReversion("SPY", 4, 1.0, 0.5)

	// A drop stretches price below the rolling mean, the bounce back
	// reverts inside the exit band.
	res := runStrategy(t, s, 10, 10, 10, 7, 10)

	require.NotEmpty(t, res.Orders)
	assert.Equal(t, engine.Buy, res.Orders[0].Side)

	// The exit closed the long.
	require.Len(t, res.Trades, 1)
	assert.InDelta(t, 7.0, res.Trades[0].EntryPrice, 1e-9)
	assert.InDelta(t, 10.0, res.Trades[0].ExitPrice, 1e-9)
}

func TestRSIStrategy(t *testing.T) {
	t.Parallel()

	s := NewRSI("SPY", 3, 30, 70)

	// Straight decline bottoms the RSI, the recovery tops it out.
	res := runStrategy(t, s, 10, 9, 8, 7, 8, 9, 10)

	require.NotEmpty(t, res.Orders)
	assert.Equal(t, engine.Buy, res.Orders[0].Side)

	// The overbought flip sells the long and opens a short.
	require.Len(t, res.Trades, 1)
	last := res.Orders[len(res.Orders)-1]
	assert.Equal(t, engine.Sell, last.Side)
}
