package engine

import "github.com/rustyeddy/backtester/market"

// View is the read accessor handed to strategies each bar. It exposes cash,
// positions, equity, and a historical-bar lookback without allowing direct
// mutation of the ledger.
type View struct {
	e *Engine
}

// Cash returns the current cash balance.
func (v *View) Cash() float64 { return v.e.ledger.Cash() }

// Equity returns total equity as of the last mark.
func (v *View) Equity() float64 { return v.e.ledger.Equity() }

// Position returns a copy of the position for a symbol. A zero-value
// position is returned for symbols never traded.
func (v *View) Position(symbol string) Position {
	return *v.e.ledger.Position(symbol)
}

// Config returns the run configuration, for strategy-side sizing.
func (v *View) Config() Config { return v.e.cfg }

// History returns up to lookback bars ending at (and including) barIdx. The
// returned slice aliases the engine's data and must be treated as read-only.
func (v *View) History(lookback, barIdx int) []market.Bar {
	if barIdx < 0 || barIdx >= len(v.e.data) {
		return nil
	}
	start := barIdx - lookback + 1
	if start < 0 {
		start = 0
	}
	return v.e.data[start : barIdx+1]
}
