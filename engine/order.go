package engine

import "time"

// Side: +1 buy, -1 sell. The sign doubles as the slippage direction.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

// OrderType selects the fill-price model.
type OrderType int8

const (
	Market OrderType = iota
	Limit
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	}
	return "UNKNOWN"
}

// Order is a request produced by a strategy for one bar. Quantity must be
// positive; direction is carried by Side. The engine consumes each order
// exactly once: rejected orders are dropped, never requeued.
type Order struct {
	Symbol     string
	Side       Side
	Quantity   float64
	Type       OrderType
	LimitPrice float64 // only meaningful for Limit orders

	// Stamped by the engine at submission.
	Time time.Time

	// Set by the fill simulator on success.
	Filled    bool
	FillPrice float64
	FillTime  time.Time
}

// MarketOrder builds a market order.
func MarketOrder(symbol string, side Side, quantity float64) Order {
	return Order{Symbol: symbol, Side: side, Quantity: quantity, Type: Market}
}

// LimitOrder builds a limit order.
func LimitOrder(symbol string, side Side, quantity, limitPrice float64) Order {
	return Order{Symbol: symbol, Side: side, Quantity: quantity, Type: Limit, LimitPrice: limitPrice}
}
