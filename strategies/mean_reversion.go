package strategies

import (
	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// MeanReversion trades the z-score of price against its rolling mean: long
// when price is stretched below the mean, short when stretched above, flat
// again once price reverts inside the exit band.
type MeanReversion struct {
	Symbol     string
	Lookback   int     // 20
	ZThreshold float64 // 2.0, entry
	ZExit      float64 // 0.5, revert-to-mean exit
}

func NewMeanReversion(symbol string, lookback int, zThreshold, zExit float64) *MeanReversion {
	if lookback <= 0 {
		lookback = 20
	}
	if zThreshold <= 0 {
		zThreshold = 2.0
	}
	if zExit <= 0 {
		zExit = 0.5
	}
	return &MeanReversion{Symbol: symbol, Lookback: lookback, ZThreshold: zThreshold, ZExit: zExit}
}

func (s *MeanReversion) Name() string { return "mean-reversion" }

func (s *MeanReversion) OnBar(v *engine.View, idx int, bar market.Bar) []engine.Order {
	if bar.Symbol != s.Symbol {
		return nil
	}

	closes := indicators.Closes(v.History(s.Lookback, idx))
	z, err := indicators.ZScore(closes, s.Lookback)
	if err != nil {
		return nil
	}

	pos := v.Position(s.Symbol)

	switch {
	case z < -s.ZThreshold:
		return goLong(v, s.Symbol, bar)

	case z > s.ZThreshold:
		return goShort(v, s.Symbol, bar)

	// Revert-to-mean exits.
	case pos.Quantity > 0 && z > -s.ZExit:
		return []engine.Order{engine.MarketOrder(s.Symbol, engine.Sell, pos.Quantity)}

	case pos.Quantity < 0 && z < s.ZExit:
		return []engine.Order{engine.MarketOrder(s.Symbol, engine.Buy, -pos.Quantity)}
	}
	return nil
}
