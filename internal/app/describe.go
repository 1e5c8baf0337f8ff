package app

import (
	"fmt"
	"math"
	"sort"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/session"
)

// ColumnStats summarizes one numeric column of the fetched table:
// count, mean, sample standard deviation and the quartile spread.
type ColumnStats struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Summary holds per-column statistics over a price series.
type Summary struct {
	Symbol  string
	Columns []ColumnStats
}

// Describe computes summary statistics over the session's fetched
// series, one row per OHLCV column.
func (a *App) Describe(s *session.Session) (*Summary, error) {
	series, ok := s.Series()
	if !ok {
		return nil, core.WrapError(core.ErrPrecondition,
			fmt.Errorf("fetch data before describing it"))
	}

	n := series.Len()
	open := series.Opens()
	high := make([]float64, n)
	low := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range series.Bars {
		high[i] = b.High
		low[i] = b.Low
		volume[i] = float64(b.Volume)
	}

	return &Summary{
		Symbol: series.Symbol,
		Columns: []ColumnStats{
			describeColumn("open", open),
			describeColumn("high", high),
			describeColumn("low", low),
			describeColumn("close", series.Closes()),
			describeColumn("volume", volume),
		},
	}, nil
}

func describeColumn(name string, values []float64) ColumnStats {
	n := len(values)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	std := math.NaN()
	if n > 1 {
		var ss float64
		for _, v := range values {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return ColumnStats{
		Name:   name,
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile interpolates linearly between the two nearest order
// statistics, matching the convention spreadsheet tools use.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
