package engine

// Config holds the cost and risk parameters for a backtest run. It is an
// immutable value; the engine copies it at construction and no component
// mutates it afterwards.
type Config struct {
	// InitialCapital is the starting cash balance.
	InitialCapital float64

	// Commission is the fraction of transaction value charged per fill,
	// on both buys and sells (0.001 = 0.1%).
	Commission float64

	// Slippage is the fractional execution-price penalty relative to the
	// bar's reference price (0.0005 = 5 bps).
	Slippage float64

	// MarginRequirement of 1.0 means no margin extension.
	MarginRequirement float64

	// MaxPositionSize is the fraction of equity a strategy should commit to
	// a single position. It is advisory: strategies use it for sizing, the
	// fill simulator does not enforce it.
	MaxPositionSize float64

	// AllowShorting permits sells beyond the current long quantity.
	AllowShorting bool
}

// DefaultConfig returns the standard backtest configuration.
func DefaultConfig() Config {
	return Config{
		InitialCapital:    100_000,
		Commission:        0.001,
		Slippage:          0.0005,
		MarginRequirement: 1.0,
		MaxPositionSize:   0.1,
		AllowShorting:     true,
	}
}
