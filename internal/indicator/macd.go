package indicator

// Standard MACD spans.
const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// MACD calculates the moving average convergence/divergence line
// (EMA12 - EMA26 of the input) and its signal line (EMA9 of the MACD
// line itself). Both outputs are index-aligned with the input and
// defined from the first bar.
func MACD(closes []float64) (macd, signal []float64) {
	fast := EMA(closes, macdFastSpan)
	slow := EMA(closes, macdSlowSpan)

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}

	signal = EMA(macd, macdSignalSpan)
	return macd, signal
}
