package backtest

import (
	"math"

	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// tradingDaysPerYear is the annualization base for daily returns.
const tradingDaysPerYear = 252

// Analyze derives the scalar metrics from a result's equity curves and
// strategy returns. A degenerate (zero-variance) return series leaves
// the Sharpe ratio marked invalid rather than producing an infinity.
func Analyze(r *Result) Metrics {
	m := Metrics{
		MarketReturn:   totalReturn(r.CumMarket),
		StrategyReturn: totalReturn(r.CumStrategy),
		MaxDrawdown:    MaxDrawdown(r.CumStrategy),
		Volatility:     AnnualizedVolatility(r.StrategyReturn),
	}
	m.Outperformance = m.StrategyReturn - m.MarketReturn

	sharpe, err := SharpeRatio(r.StrategyReturn)
	if err == nil {
		m.Sharpe = sharpe
		m.SharpeValid = true
	}

	return m
}

// totalReturn is the last cumulative value minus one.
func totalReturn(cum []float64) float64 {
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1] - 1
}

// Drawdown computes the per-bar decline from the running peak of an
// equity curve, as a fraction <= 0.
func Drawdown(cum []float64) []float64 {
	out := make([]float64, len(cum))
	peak := math.Inf(-1)
	for i, v := range cum {
		if v > peak {
			peak = v
		}
		out[i] = (v - peak) / peak
	}
	return out
}

// MaxDrawdown is the most negative drawdown over the curve.
func MaxDrawdown(cum []float64) float64 {
	var maxDD float64
	for _, dd := range Drawdown(cum) {
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// AnnualizedVolatility is the sample standard deviation of the defined
// returns, scaled by sqrt(252).
func AnnualizedVolatility(returns []float64) float64 {
	_, stddev, n := meanStddev(returns)
	if n < 2 {
		return 0
	}
	return stddev * math.Sqrt(tradingDaysPerYear)
}

// SharpeRatio is the mean return over its standard deviation,
// annualized. Returns ErrDegenerateStat when the standard deviation is
// zero, so a flat series never silently yields an infinite ratio.
func SharpeRatio(returns []float64) (float64, error) {
	mean, stddev, n := meanStddev(returns)
	if n < 2 || stddev == 0 {
		return 0, core.ErrDegenerateStat
	}
	return mean / stddev * math.Sqrt(tradingDaysPerYear), nil
}

// meanStddev computes the mean and sample standard deviation of the
// defined entries, skipping NaN.
func meanStddev(values []float64) (mean, stddev float64, n int) {
	var sum float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, 0, 0
	}
	mean = sum / float64(n)

	if n < 2 {
		return mean, 0, n
	}
	var variance float64
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		variance += (v - mean) * (v - mean)
	}
	stddev = math.Sqrt(variance / float64(n-1))
	return mean, stddev, n
}
