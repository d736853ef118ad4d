package calculator

import "github.com/guregu/null/v6"

// DefaultRSIPeriod is the conventional RSI window.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index of closes using simple moving
// averages of gains and losses over period entries. The first entry has no
// prior close and contributes zero gain and zero loss, so the first defined
// value sits at index period-1.
//
// When the average loss is zero RSI is 100, unless the average gain is also
// zero: a flat window has no momentum and is left undefined.
func RSI(closes []float64, period int) []null.Float {
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

	avgGain := SimpleMovingAverage(gains, period)
	avgLoss := SimpleMovingAverage(losses, period)

	out := make([]null.Float, len(closes))
	for i := range closes {
		if !avgGain[i].Valid || !avgLoss[i].Valid {
			continue
		}
		g, l := avgGain[i].Float64, avgLoss[i].Float64
		switch {
		case l == 0 && g == 0:
		case l == 0:
			out[i] = null.FloatFrom(100)
		default:
			rs := g / l
			out[i] = null.FloatFrom(100.0 - 100.0/(1.0+rs))
		}
	}
	return out
}
