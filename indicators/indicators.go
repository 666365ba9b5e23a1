// Package indicators provides batch technical indicators over bar history.
// Each function computes the latest value from a slice of closes; strategies
// call them once per bar with the lookback window they need.
package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/backtester/market"
)

// Closes extracts closing prices from bars, in order.
func Closes(bars []market.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// SMA is the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period, len(values))
	}

	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// EMA is the exponential moving average over the full slice, seeded with the
// SMA of the first period values.
func EMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period, len(values))
	}

	multiplier := 2.0 / float64(period+1)

	sma := 0.0
	for i := 0; i < period; i++ {
		sma += values[i]
	}
	ema := sma / float64(period)

	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
	}
	return ema, nil
}

// Stdev is the sample standard deviation of the last period values.
func Stdev(values []float64, period int) (float64, error) {
	if period < 2 {
		return 0, fmt.Errorf("period must be at least 2, got %d", period)
	}
	if len(values) < period {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period, len(values))
	}

	window := values[len(values)-period:]
	mean := 0.0
	for _, v := range window {
		mean += v
	}
	mean /= float64(period)

	sumSq := 0.0
	for _, v := range window {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(period-1)), nil
}

// ZScore measures how far the latest value sits from the rolling mean, in
// rolling standard deviations. Returns 0 when the window has no variance.
func ZScore(values []float64, period int) (float64, error) {
	mean, err := SMA(values, period)
	if err != nil {
		return 0, err
	}
	sd, err := Stdev(values, period)
	if err != nil {
		return 0, err
	}
	if sd == 0 {
		return 0, nil
	}
	return (values[len(values)-1] - mean) / sd, nil
}

// RSI is the relative strength index over the last period+1 values, using
// simple averages of gains and losses. 100 when there are no losses in the
// window.
func RSI(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(values) < period+1 {
		return 0, fmt.Errorf("not enough values: need %d, got %d", period+1, len(values))
	}

	window := values[len(values)-period-1:]
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	if losses == 0 {
		return 100, nil
	}
	rs := gains / losses
	return 100 - 100/(1+rs), nil
}

// Bollinger returns the upper, middle, and lower bands at width standard
// deviations around the SMA.
func Bollinger(values []float64, period int, width float64) (upper, middle, lower float64, err error) {
	middle, err = SMA(values, period)
	if err != nil {
		return 0, 0, 0, err
	}
	sd, err := Stdev(values, period)
	if err != nil {
		return 0, 0, 0, err
	}
	return middle + width*sd, middle, middle - width*sd, nil
}
