package engine

import (
	"sort"
	"time"
)

// Position tracks the signed holding in one symbol: positive quantity is
// long, negative is short. One Position exists per symbol, created lazily on
// first reference and kept at zero quantity for the life of the run.
type Position struct {
	Symbol        string
	Quantity      float64
	AvgPrice      float64 // average cost basis of the open lot
	UnrealizedPnL float64
	RealizedPnL   float64 // cumulative over the run
	EntryTime     time.Time
}

// Ledger owns the cash balance and all positions for a single run. Only the
// fill simulator mutates it, through the accessors below, which preserve the
// zero-quantity invariant: quantity 0 implies avg price 0 and no entry time.
type Ledger struct {
	cash      float64
	positions map[string]*Position
}

// NewLedger creates a ledger with the given starting cash.
func NewLedger(cash float64) *Ledger {
	return &Ledger{
		cash:      cash,
		positions: make(map[string]*Position),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() float64 { return l.cash }

// Position returns the position for a symbol, creating a zero position on
// first reference.
func (l *Ledger) Position(symbol string) *Position {
	p, ok := l.positions[symbol]
	if !ok {
		p = &Position{Symbol: symbol}
		l.positions[symbol] = p
	}
	return p
}

// Positions returns all positions sorted by symbol. Iteration order matters
// nowhere for accounting, but a stable order keeps reports deterministic.
func (l *Ledger) Positions() []*Position {
	out := make([]*Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// MarkToMarket recomputes unrealized P&L for every open position against the
// given price. The engine calls this once per bar, before equity is read;
// Equity is only correct after the mark is current.
func (l *Ledger) MarkToMarket(price float64) {
	for _, p := range l.positions {
		if p.Quantity != 0 {
			p.UnrealizedPnL = p.Quantity * (price - p.AvgPrice)
		}
	}
}

// Equity is cash plus, for each position, the cost-basis value and the
// unrealized P&L. Valuing at cost plus unrealized (rather than directly at
// mark price) keeps the realized/unrealized split explicit and auditable.
func (l *Ledger) Equity() float64 {
	equity := l.cash
	for _, p := range l.positions {
		equity += p.Quantity*p.AvgPrice + p.UnrealizedPnL
	}
	return equity
}

// InMarket reports whether any position has non-zero quantity.
func (l *Ledger) InMarket() bool {
	for _, p := range l.positions {
		if p.Quantity != 0 {
			return true
		}
	}
	return false
}

// debit removes cash; credit adds it. Fill-simulator use only.
func (l *Ledger) debit(amount float64)  { l.cash -= amount }
func (l *Ledger) credit(amount float64) { l.cash += amount }

// resetIfFlat enforces the zero-quantity invariant after a fill.
func (p *Position) resetIfFlat() {
	if p.Quantity == 0 {
		p.AvgPrice = 0
		p.UnrealizedPnL = 0
		p.EntryTime = time.Time{}
	}
}
