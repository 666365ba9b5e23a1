package strategies

import (
	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/market"
)

// BuyHold buys once on the first bar for its symbol and then holds. With
// Quantity 0 it sizes the buy from equity like the other strategies. Mostly
// a wiring test and a benchmark baseline.
type BuyHold struct {
	Symbol   string
	Quantity float64

	opened bool
}

func NewBuyHold(symbol string, quantity float64) *BuyHold {
	return &BuyHold{Symbol: symbol, Quantity: quantity}
}

func (s *BuyHold) Name() string { return "buy-hold" }

func (s *BuyHold) OnBar(v *engine.View, _ int, bar market.Bar) []engine.Order {
	if s.opened || bar.Symbol != s.Symbol {
		return nil
	}

	qty := s.Quantity
	if qty == 0 {
		qty = positionSize(v, bar.Close)
	}
	if qty <= 0 {
		return nil
	}

	s.opened = true
	return []engine.Order{engine.MarketOrder(s.Symbol, engine.Buy, qty)}
}
