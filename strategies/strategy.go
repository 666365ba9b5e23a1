// Package strategies provides built-in trading strategies for the backtest
// engine and a name-based constructor for the CLI.
package strategies

import (
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/backtester/engine"
	"github.com/rustyeddy/backtester/market"
)

// Params carries every strategy knob the CLI can set. Each strategy reads
// only the fields it cares about.
type Params struct {
	Symbol string

	// buy-hold
	Quantity float64

	// sma-cross
	FastPeriod int
	SlowPeriod int

	// mean-reversion
	Lookback   int
	ZThreshold float64
	ZExit      float64

	// rsi
	RSIPeriod  int
	Oversold   float64
	Overbought float64
}

// New builds a strategy by name.
func New(name string, p Params) (engine.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "buy-hold", "buyhold":
		return NewBuyHold(p.Symbol, p.Quantity), nil

	case "sma-cross", "smacross":
		return NewSMACross(p.Symbol, p.FastPeriod, p.SlowPeriod), nil

	case "mean-reversion", "meanreversion":
		return NewMeanReversion(p.Symbol, p.Lookback, p.ZThreshold, p.ZExit), nil

	case "rsi":
		return NewRSI(p.Symbol, p.RSIPeriod, p.Oversold, p.Overbought), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the supported strategy names.
func Names() []string {
	return []string{"buy-hold", "sma-cross", "mean-reversion", "rsi"}
}

// positionSize converts the configured equity fraction into whole shares at
// the given price.
func positionSize(v *engine.View, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Floor(v.Equity() * v.Config().MaxPositionSize / price)
}

// goLong returns the orders that move a flat or short position to long:
// close the short first, then open a sized long. Nil when already long.
func goLong(v *engine.View, symbol string, bar market.Bar) []engine.Order {
	pos := v.Position(symbol)
	if pos.Quantity > 0 {
		return nil
	}

	var orders []engine.Order
	if pos.Quantity < 0 {
		orders = append(orders, engine.MarketOrder(symbol, engine.Buy, -pos.Quantity))
	}
	if size := positionSize(v, bar.Close); size > 0 {
		orders = append(orders, engine.MarketOrder(symbol, engine.Buy, size))
	}
	return orders
}

// goShort returns the orders that move a flat or long position to short:
// close the long first, then open a sized short when shorting is allowed.
// Nil when already short.
func goShort(v *engine.View, symbol string, bar market.Bar) []engine.Order {
	pos := v.Position(symbol)
	if pos.Quantity < 0 {
		return nil
	}

	var orders []engine.Order
	if pos.Quantity > 0 {
		orders = append(orders, engine.MarketOrder(symbol, engine.Sell, pos.Quantity))
	}
	if v.Config().AllowShorting {
		if size := positionSize(v, bar.Close); size > 0 {
			orders = append(orders, engine.MarketOrder(symbol, engine.Sell, size))
		}
	}
	return orders
}
