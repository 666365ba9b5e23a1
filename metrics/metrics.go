// Package metrics computes performance statistics from a finished equity
// curve and trade log.
package metrics

import "math"

// Params are the annualization inputs for risk-adjusted metrics.
type Params struct {
	// RiskFreeRate is the annual risk-free rate used for excess returns.
	RiskFreeRate float64

	// PeriodsPerYear converts per-period figures to annual ones (252 for
	// daily bars).
	PeriodsPerYear int
}

// DefaultParams returns the standard annualization parameters.
func DefaultParams() Params {
	return Params{RiskFreeRate: 0.02, PeriodsPerYear: 252}
}

// Report is a flat set of named statistics, computed once from a finished
// run and never mutated afterwards. Every ratio guards its denominator: a
// zero denominator yields the documented sentinel (0, or +Inf for profit
// factor) rather than NaN.
type Report struct {
	// Returns
	TotalReturn      float64
	AnnualizedReturn float64
	CAGR             float64

	// Risk
	Volatility        float64
	DownsideDeviation float64
	MaxDrawdown       float64
	AvgDrawdown       float64
	DrawdownDuration  int // longest drawdown spell, in periods

	// Risk-adjusted
	SharpeRatio  float64
	SortinoRatio float64
	CalmarRatio  float64

	// Trade statistics
	NumTrades            int
	WinRate              float64
	ProfitFactor         float64
	AvgTrade             float64
	AvgWin               float64
	AvgLoss              float64
	LargestWin           float64
	LargestLoss          float64
	MaxConsecutiveWins   int
	MaxConsecutiveLosses int

	// Exposure
	ExposureTime float64 // fraction of periods with a non-zero position
}

// Compute derives a report from equity values (one per period, in period
// order) and trade P&L values (in trade order). Pure function of its inputs.
//
// A curve with fewer than two points yields a zero-valued report: there is
// no return series to measure.
func Compute(equity []float64, tradePnL []float64, p Params) *Report {
	r := &Report{}

	if len(equity) < 2 {
		return r
	}

	// Simple period-over-period returns.
	returns := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		returns[i-1] = (equity[i] - equity[i-1]) / equity[i-1]
	}

	r.TotalReturn = equity[len(equity)-1]/equity[0] - 1

	years := float64(len(returns)) / float64(p.PeriodsPerYear)
	if years > 0 {
		r.CAGR = math.Pow(equity[len(equity)-1]/equity[0], 1/years) - 1
		r.AnnualizedReturn = r.CAGR
	}

	sqrtPeriods := math.Sqrt(float64(p.PeriodsPerYear))
	r.Volatility = stdev(returns) * sqrtPeriods

	var negative []float64
	for _, ret := range returns {
		if ret < 0 {
			negative = append(negative, ret)
		}
	}
	if len(negative) > 0 {
		r.DownsideDeviation = stdev(negative) * sqrtPeriods
	}

	computeDrawdowns(r, equity)

	// Excess return over the per-period risk-free rate, annualized.
	rfPerPeriod := p.RiskFreeRate / float64(p.PeriodsPerYear)
	excess := (mean(returns) - rfPerPeriod) * float64(p.PeriodsPerYear)

	if r.Volatility > 0 {
		r.SharpeRatio = excess / r.Volatility
	}
	if r.DownsideDeviation > 0 {
		r.SortinoRatio = excess / r.DownsideDeviation
	}
	if r.MaxDrawdown > 0 {
		r.CalmarRatio = r.AnnualizedReturn / r.MaxDrawdown
	}

	computeTradeStats(r, tradePnL)

	return r
}

// computeDrawdowns fills the drawdown fields from the equity curve.
// drawdown[t] is the fractional decline from the running peak.
func computeDrawdowns(r *Report, equity []float64) {
	peak := equity[0]
	var ddSum float64
	var ddCount int
	var spell, longest int

	for _, eq := range equity {
		if eq > peak {
			peak = eq
		}
		dd := (peak - eq) / peak
		if dd > r.MaxDrawdown {
			r.MaxDrawdown = dd
		}
		if dd > 0 {
			ddSum += dd
			ddCount++
			spell++
			if spell > longest {
				longest = spell
			}
		} else {
			spell = 0
		}
	}

	if ddCount > 0 {
		r.AvgDrawdown = ddSum / float64(ddCount)
	}
	r.DrawdownDuration = longest
}

// computeTradeStats fills the trade-quality fields from per-trade P&L.
func computeTradeStats(r *Report, pnl []float64) {
	r.NumTrades = len(pnl)
	if r.NumTrades == 0 {
		return
	}

	var wins, losses []float64
	var winSum, lossSum float64
	for _, v := range pnl {
		if v > 0 {
			wins = append(wins, v)
			winSum += v
		} else if v < 0 {
			losses = append(losses, v)
			lossSum += v
		}
	}

	r.WinRate = float64(len(wins)) / float64(r.NumTrades)
	r.AvgTrade = mean(pnl)

	if len(wins) > 0 {
		r.AvgWin = winSum / float64(len(wins))
		r.LargestWin = maxOf(wins)
	}
	if len(losses) > 0 {
		r.AvgLoss = lossSum / float64(len(losses))
		r.LargestLoss = minOf(losses)
	}

	if lossSum != 0 {
		r.ProfitFactor = winSum / math.Abs(lossSum)
	} else {
		r.ProfitFactor = math.Inf(1)
	}

	r.MaxConsecutiveWins = maxConsecutive(pnl, func(v float64) bool { return v > 0 })
	r.MaxConsecutiveLosses = maxConsecutive(pnl, func(v float64) bool { return v <= 0 })
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev is the population standard deviation, matching the whole-curve
// treatment of the return series (the curve is the population, not a
// sample).
func stdev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}

func maxConsecutive(values []float64, match func(float64) bool) int {
	var run, longest int
	for _, v := range values {
		if match(v) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
