package core

import (
	"fmt"
	"time"
)

// Bar is one trading day's OHLCV record.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries is an ordered sequence of daily bars for one symbol.
// Bars are sorted ascending by date, one bar per trading day; calendar
// gaps are fine (non-trading days are simply absent).
type PriceSeries struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars.
func (p PriceSeries) Len() int {
	return len(p.Bars)
}

// Closes extracts the closing prices, index-aligned with Bars.
func (p PriceSeries) Closes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Close
	}
	return out
}

// Opens extracts the opening prices, index-aligned with Bars.
func (p PriceSeries) Opens() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Open
	}
	return out
}

// Dates extracts the trade dates, index-aligned with Bars.
func (p PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Date
	}
	return out
}

// Validate checks the series invariants: non-empty, dates strictly increasing.
func (p PriceSeries) Validate() error {
	if len(p.Bars) == 0 {
		return ErrNoData
	}
	for i := 1; i < len(p.Bars); i++ {
		if !p.Bars[i].Date.After(p.Bars[i-1].Date) {
			return WrapError(ErrProviderFailed,
				fmt.Errorf("bars out of order at index %d (%s)", i, p.Bars[i].Date.Format("2006-01-02")))
		}
	}
	return nil
}
