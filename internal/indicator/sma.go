package indicator

import "math"

// SMA calculates a trailing Simple Moving Average.
// The output is index-aligned with the input: the first window-1 values
// are NaN because the rolling window has insufficient history there.
func SMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := 0; i < len(out) && i < window-1; i++ {
		out[i] = math.NaN()
	}
	if window <= 0 || len(values) < window {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	var sum float64
	for i := 0; i < window; i++ {
		sum += values[i]
	}
	out[window-1] = sum / float64(window)

	// Rolling calculation
	for i := window; i < len(values); i++ {
		sum = sum - values[i-window] + values[i]
		out[i] = sum / float64(window)
	}

	return out
}
