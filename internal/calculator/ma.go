package calculator

import "github.com/guregu/null/v6"

// SimpleMovingAverage computes the mean of closes over window entries ending
// at each position. Position i is undefined until window closes ending at i
// exist, so a window longer than the series yields an all-undefined result.
func SimpleMovingAverage(closes []float64, window int) []null.Float {
	out := make([]null.Float, len(closes))
	if window <= 0 || window > len(closes) {
		return out
	}
	// Each window is summed afresh; a running sum drifts and can leave a
	// window of non-negative values with a negative mean.
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for _, c := range closes[i-window+1 : i+1] {
			sum += c
		}
		out[i] = null.FloatFrom(sum / float64(window))
	}
	return out
}
