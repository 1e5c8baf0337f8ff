// Package backtest converts crossover positions into daily and
// cumulative return series and derives risk statistics from them.
package backtest

import (
	"fmt"
	"math"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/strategy"
)

// Run computes the return and equity-curve columns for the given frame
// and signal series, then fills in the risk metrics. The strategy
// equity curve applies each position with a one-bar execution lag.
func Run(f *indicator.Frame, sig *strategy.Series) (*Result, error) {
	if f == nil || sig == nil {
		return nil, core.ErrPrecondition
	}
	n := f.Series.Len()
	if n == 0 {
		return nil, core.ErrNoData
	}
	if len(sig.Signal) != n || len(sig.Position) != n {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("signal series has %d bars, frame has %d", len(sig.Signal), n))
	}

	closes := f.Series.Closes()

	daily := make([]float64, n)
	strat := make([]float64, n)
	daily[0] = math.NaN()
	strat[0] = math.NaN()
	for i := 1; i < n; i++ {
		daily[i] = closes[i]/closes[i-1] - 1
		strat[i] = float64(sig.Position[i-1]) * daily[i]
	}

	r := &Result{
		Symbol:         f.Series.Symbol,
		ShortWindow:    f.ShortWindow,
		LongWindow:     f.LongWindow,
		Dates:          f.Series.Dates(),
		Open:           f.Series.Opens(),
		Close:          closes,
		Signal:         sig.Signal,
		Position:       sig.Position,
		DailyReturn:    daily,
		StrategyReturn: strat,
		CumMarket:      cumulate(daily),
		CumStrategy:    cumulate(strat),
	}
	r.Metrics = Analyze(r)

	return r, nil
}

// cumulate builds the running product of (1+r). Undefined returns
// contribute a factor of 1, so the curve starts at exactly 1.0.
func cumulate(returns []float64) []float64 {
	out := make([]float64, len(returns))
	cum := 1.0
	for i, r := range returns {
		if !math.IsNaN(r) {
			cum *= 1 + r
		}
		out[i] = cum
	}
	return out
}
