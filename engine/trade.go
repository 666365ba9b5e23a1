package engine

import "time"

// Trade is one realized round-trip: a closing fill matched against the entry
// lot it reduces. A single closing fill produces exactly one Trade covering
// the portion of the position it closes. Records are append-only and
// read-only once appended.
type Trade struct {
	ID         string
	Symbol     string
	EntryTime  time.Time
	ExitTime   time.Time
	Quantity   float64 // portion closed, always positive
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	ReturnPct  float64
}

// EquityPoint snapshots total equity and cash at a bar boundary. One is
// appended per bar, in bar order.
type EquityPoint struct {
	Time   time.Time
	Equity float64
	Cash   float64
}
