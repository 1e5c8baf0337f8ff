package backtest

import "time"

// Result holds the complete backtest output: the input columns the
// simulator and renderers need, the derived return series, and the
// performance metrics. A Result is a snapshot and is never mutated
// after Run returns it.
type Result struct {
	Symbol      string
	ShortWindow int
	LongWindow  int

	Dates  []time.Time
	Open   []float64
	Close  []float64
	Signal []int
	// Position is the signal delta: +1 entry, -1 exit, 0 no change.
	Position []int

	// DailyReturn[i] = Close[i]/Close[i-1] - 1, NaN at index 0.
	DailyReturn []float64
	// StrategyReturn[i] = Position[i-1] * DailyReturn[i]: the position
	// recorded on the prior bar determines exposure during this bar.
	StrategyReturn []float64
	// Cumulative product equity curves, both starting at 1.0.
	CumMarket   []float64
	CumStrategy []float64

	Metrics Metrics
}

// Metrics holds scalar performance and risk statistics.
type Metrics struct {
	MarketReturn   float64 // buy-and-hold total return
	StrategyReturn float64 // strategy total return
	Outperformance float64 // strategy minus market

	MaxDrawdown float64 // most negative drawdown, <= 0
	Volatility  float64 // annualized stddev of strategy returns

	// Sharpe is meaningful only when SharpeValid is true; a
	// zero-variance return series leaves it undefined.
	Sharpe      float64
	SharpeValid bool
}

// Bars returns the number of bars in the backtest window.
func (r *Result) Bars() int {
	return len(r.Close)
}
