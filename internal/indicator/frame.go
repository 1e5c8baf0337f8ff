package indicator

import (
	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// RSIPeriod is the fixed lookback for the RSI column.
const RSIPeriod = 14

// Frame is a price series augmented with derived indicator columns.
// Every column is index-aligned with Series.Bars, with NaN marking bars
// where a rolling window has insufficient history. A Frame is a
// snapshot: once built it is never mutated.
type Frame struct {
	Series core.PriceSeries

	ShortWindow int
	LongWindow  int

	SMAShort   []float64
	SMALong    []float64
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
}

// Compute derives all indicator columns from the series closes. It is a
// pure function: calling it twice on the same series yields identical
// frames.
func Compute(series core.PriceSeries, shortWindow, longWindow int) (*Frame, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	macd, macdSignal := MACD(closes)

	return &Frame{
		Series:      series,
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
		SMAShort:    SMA(closes, shortWindow),
		SMALong:     SMA(closes, longWindow),
		RSI:         RSI(closes, RSIPeriod),
		MACD:        macd,
		MACDSignal:  macdSignal,
	}, nil
}
