// Package market defines OHLCV bar data and the feeds that load it.
package market

import (
	"fmt"
	"sort"
	"time"
)

// Bar is one OHLCV observation for a symbol over a period. Bars are
// immutable once produced by a feed.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// SortBars orders bars by timestamp ascending. The sort is stable so that
// same-timestamp bars for different symbols keep their feed order.
func SortBars(bars []Bar) {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})
}

// ValidateBars checks that every bar carries the required fields and that the
// sequence has no duplicate (symbol, timestamp) pairs. Bars must already be
// sorted; duplicate timestamps for the same symbol are undefined behavior in
// the engine, so they are rejected here at load time.
func ValidateBars(bars []Bar) error {
	type key struct {
		symbol string
		ts     int64
	}
	seen := make(map[key]struct{}, len(bars))

	for i, b := range bars {
		if b.Symbol == "" {
			return fmt.Errorf("bar %d: missing symbol", i)
		}
		if b.Time.IsZero() {
			return fmt.Errorf("bar %d (%s): missing timestamp", i, b.Symbol)
		}
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s @ %s): high %.6f below low %.6f",
				i, b.Symbol, b.Time.Format(time.RFC3339), b.High, b.Low)
		}
		if i > 0 && b.Time.Before(bars[i-1].Time) {
			return fmt.Errorf("bar %d (%s @ %s): out of order", i, b.Symbol, b.Time.Format(time.RFC3339))
		}

		k := key{b.Symbol, b.Time.UnixNano()}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("duplicate bar for %s at %s", b.Symbol, b.Time.Format(time.RFC3339))
		}
		seen[k] = struct{}{}
	}
	return nil
}
