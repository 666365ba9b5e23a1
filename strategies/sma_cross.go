package strategies

import (
	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/indicators"
	"github.com/rustyeddy/backtester/market"
)

// SMACross trades a fast/slow moving-average crossover: long when the fast
// average crosses above the slow one, short (or flat, when shorting is
// disallowed) on the opposite cross. Enters only on the cross itself, not
// while one average merely sits above the other.
type SMACross struct {
	Symbol     string
	FastPeriod int // 10
	SlowPeriod int // 30

	lastDiff     float64
	haveLastDiff bool
}

func NewSMACross(symbol string, fast, slow int) *SMACross {
	if fast <= 0 {
		fast = 10
	}
	if slow <= fast {
		slow = 3 * fast
	}
	return &SMACross{Symbol: symbol, FastPeriod: fast, SlowPeriod: slow}
}

func (s *SMACross) Name() string { return "sma-cross" }

func (s *SMACross) OnBar(v *engine.View, idx int, bar market.Bar) []engine.Order {
	if bar.Symbol != s.Symbol {
		return nil
	}

	closes := indicators.Closes(v.History(s.SlowPeriod, idx))

	fast, err := indicators.SMA(closes, s.FastPeriod)
	if err != nil {
		return nil
	}
	slow, err := indicators.SMA(closes, s.SlowPeriod)
	if err != nil {
		return nil
	}

	diff := fast - slow
	defer func() {
		s.lastDiff = diff
		s.haveLastDiff = true
	}()

	if !s.haveLastDiff {
		return nil
	}

	switch {
	case s.lastDiff <= 0 && diff > 0:
		return goLong(v, s.Symbol, bar)
	case s.lastDiff >= 0 && diff < 0:
		return goShort(v, s.Symbol, bar)
	}
	return nil
}
