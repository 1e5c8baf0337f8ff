package backtest

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/strategy"
)

func testFrame(closes []float64) *indicator.Frame {
	base := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[i] = core.Bar{Date: base.AddDate(0, 0, i), Open: c, Close: c, Volume: 100}
	}
	return &indicator.Frame{
		Series:      core.PriceSeries{Symbol: "TEST", Bars: bars},
		ShortWindow: 2,
		LongWindow:  3,
	}
}

func sigSeries(positions []int) *strategy.Series {
	signal := make([]int, len(positions))
	cur := 0
	for i, p := range positions {
		cur += p
		signal[i] = cur
	}
	return &strategy.Series{Signal: signal, Position: positions}
}

func TestRun_DailyReturns(t *testing.T) {
	f := testFrame([]float64{100, 110, 99})
	r, err := Run(f, sigSeries([]int{0, 0, 0}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !math.IsNaN(r.DailyReturn[0]) {
		t.Errorf("DailyReturn[0] = %f, want NaN", r.DailyReturn[0])
	}
	if math.Abs(r.DailyReturn[1]-0.10) > 1e-9 {
		t.Errorf("DailyReturn[1] = %f, want 0.10", r.DailyReturn[1])
	}
	if math.Abs(r.DailyReturn[2]-(-0.10)) > 1e-9 {
		t.Errorf("DailyReturn[2] = %f, want -0.10", r.DailyReturn[2])
	}
}

func TestRun_OneBarLag(t *testing.T) {
	// Entry recorded at bar 1; exposure starts with bar 2's return.
	f := testFrame([]float64{100, 100, 110, 121})
	r, err := Run(f, sigSeries([]int{0, 1, 0, 0}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r.StrategyReturn[1] != 0 {
		t.Errorf("StrategyReturn[1] = %f, want 0 (position not yet held)", r.StrategyReturn[1])
	}
	if math.Abs(r.StrategyReturn[2]-0.10) > 1e-9 {
		t.Errorf("StrategyReturn[2] = %f, want 0.10", r.StrategyReturn[2])
	}
	// Position delta is zero at bar 2, so bar 3 earns nothing.
	if r.StrategyReturn[3] != 0 {
		t.Errorf("StrategyReturn[3] = %f, want 0", r.StrategyReturn[3])
	}
}

func TestRun_CumulativeCurvesStartAtOne(t *testing.T) {
	f := testFrame([]float64{100, 105, 110, 108})
	r, err := Run(f, sigSeries([]int{0, 1, 0, -1}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if r.CumMarket[0] != 1.0 {
		t.Errorf("CumMarket[0] = %f, want 1.0", r.CumMarket[0])
	}
	if r.CumStrategy[0] != 1.0 {
		t.Errorf("CumStrategy[0] = %f, want 1.0", r.CumStrategy[0])
	}

	// Market curve is a running product of gross returns.
	want := 108.0 / 100.0
	if math.Abs(r.CumMarket[3]-want) > 1e-9 {
		t.Errorf("CumMarket[3] = %f, want %f", r.CumMarket[3], want)
	}

	for i, v := range r.CumMarket {
		if v < 0 {
			t.Errorf("CumMarket[%d] = %f, want non-negative", i, v)
		}
	}
}

func TestRun_TotalReturns(t *testing.T) {
	f := testFrame([]float64{100, 110, 121})
	r, err := Run(f, sigSeries([]int{0, 0, 0}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if math.Abs(r.Metrics.MarketReturn-0.21) > 1e-9 {
		t.Errorf("MarketReturn = %f, want 0.21", r.Metrics.MarketReturn)
	}
	if r.Metrics.StrategyReturn != 0 {
		t.Errorf("StrategyReturn = %f, want 0 for flat positions", r.Metrics.StrategyReturn)
	}
	if math.Abs(r.Metrics.Outperformance-(-0.21)) > 1e-9 {
		t.Errorf("Outperformance = %f, want -0.21", r.Metrics.Outperformance)
	}
}

func TestRun_MisalignedSeries(t *testing.T) {
	f := testFrame([]float64{100, 101, 102})
	_, err := Run(f, &strategy.Series{Signal: []int{0}, Position: []int{0}})
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestRun_NilInputs(t *testing.T) {
	if _, err := Run(nil, sigSeries([]int{0})); !errors.Is(err, core.ErrPrecondition) {
		t.Errorf("expected ErrPrecondition, got %v", err)
	}
}
