package indicator

import (
	"math"
	"testing"
)

func TestSMA_HandComputed(t *testing.T) {
	prices := []float64{10, 11, 12, 13, 14, 15, 16, 17}

	sma := SMA(prices, 5)

	if len(sma) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(sma))
	}

	// First window-1 values undefined
	for i := 0; i < 4; i++ {
		if !math.IsNaN(sma[i]) {
			t.Errorf("sma[%d] = %f, want NaN", i, sma[i])
		}
	}

	// (10+11+12+13+14)/5 = 12, then rolling
	expected := []float64{12, 13, 14, 15}
	for i, want := range expected {
		if got := sma[i+4]; math.Abs(got-want) > 1e-9 {
			t.Errorf("sma[%d] = %f, want %f", i+4, got, want)
		}
	}
}

func TestSMA_NotEnoughData(t *testing.T) {
	prices := []float64{10, 11}
	sma := SMA(prices, 5)

	if len(sma) != 2 {
		t.Fatalf("expected output aligned with input, got %d values", len(sma))
	}
	for i, v := range sma {
		if !math.IsNaN(v) {
			t.Errorf("sma[%d] = %f, want NaN", i, v)
		}
	}
}

func TestSMA_WarmupCount(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = float64(i)
	}

	for _, window := range []int{2, 5, 14, 20} {
		sma := SMA(prices, window)
		defined := 0
		for _, v := range sma {
			if !math.IsNaN(v) {
				defined++
			}
		}
		if defined != len(prices)-window+1 {
			t.Errorf("window %d: %d defined values, want %d", window, defined, len(prices)-window+1)
		}
	}
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	prices := []float64{10, 11, 12, 13}
	ema := EMA(prices, 3)

	if len(ema) != 4 {
		t.Fatalf("expected 4 values, got %d", len(ema))
	}
	if ema[0] != 10 {
		t.Errorf("ema[0] = %f, want seed value 10", ema[0])
	}

	// alpha = 2/(3+1) = 0.5
	// ema[1] = 0.5*11 + 0.5*10  = 10.5
	// ema[2] = 0.5*12 + 0.5*10.5 = 11.25
	// ema[3] = 0.5*13 + 0.5*11.25 = 12.125
	expected := []float64{10, 10.5, 11.25, 12.125}
	for i, want := range expected {
		if math.Abs(ema[i]-want) > 1e-9 {
			t.Errorf("ema[%d] = %f, want %f", i, ema[i], want)
		}
	}
}

func TestEMA_Empty(t *testing.T) {
	if got := EMA(nil, 12); len(got) != 0 {
		t.Errorf("expected empty output, got %d values", len(got))
	}
}
