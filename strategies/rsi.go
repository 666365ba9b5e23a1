package strategies

import (
	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// RSI buys when the relative strength index falls below the oversold level
// and sells/shorts when it rises above the overbought level.
type RSI struct {
	Symbol     string
	Period     int     // 14
	Oversold   float64 // 30
	Overbought float64 // 70
}

func NewRSI(symbol string, period int, oversold, overbought float64) *RSI {
	if period <= 0 {
		period = 14
	}
	if oversold <= 0 {
		oversold = 30
	}
	if overbought <= 0 {
		overbought = 70
	}
	return &RSI{Symbol: symbol, Period: period, Oversold: oversold, Overbought: overbought}
}

func (s *RSI) Name() string { return "rsi" }

func (s *RSI) OnBar(v *engine.View, idx int, bar market.Bar) []engine.Order {
	if bar.Symbol != s.Symbol {
		return nil
	}

	closes := indicators.Closes(v.History(s.Period+1, idx))
	rsi, err := indicators.RSI(closes, s.Period)
	if err != nil {
		return nil
	}

	switch {
	case rsi < s.Oversold:
		return goLong(v, s.Symbol, bar)
	case rsi > s.Overbought:
		return goShort(v, s.Symbol, bar)
	}
	return nil
}
