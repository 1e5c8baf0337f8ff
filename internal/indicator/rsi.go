package indicator

import "math"

// RSI calculates the Relative Strength Index over the given period.
// Daily close deltas are split into gains and losses, each smoothed
// with a trailing simple mean. The delta at index 0 is undefined, so
// the first `period` output values are NaN.
//
// Division edge cases are resolved explicitly rather than letting them
// propagate as NaN or Inf: a window with zero mean loss and positive
// mean gain is RSI 100; a completely flat window (no gains, no losses)
// is RSI 50.
func RSI(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	for i := period; i < len(closes); i++ {
		var gainSum, lossSum float64
		for j := i - period + 1; j <= i; j++ {
			gainSum += gains[j]
			lossSum += losses[j]
		}
		meanGain := gainSum / float64(period)
		meanLoss := lossSum / float64(period)

		switch {
		case meanLoss == 0 && meanGain == 0:
			out[i] = 50
		case meanLoss == 0:
			out[i] = 100
		default:
			rs := meanGain / meanLoss
			out[i] = 100 - 100/(1+rs)
		}
	}

	return out
}
