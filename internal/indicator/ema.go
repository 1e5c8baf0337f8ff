package indicator

// EMA calculates an exponentially weighted moving average with span
// smoothing (alpha = 2/(span+1)), seeded with the first value and with
// no bias adjustment. Unlike rolling statistics the output is defined
// from the first bar, so it is index-aligned with the input without any
// leading NaN values.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)

	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		out[i] = ema
	}

	return out
}
