package calculator

import (
	"math"

	"github.com/guregu/null/v6"

	"StockWatcher/internal/model"
)

// DailyReturn computes the fractional change of each close against the
// previous one. The first entry and any entry following a zero close are
// undefined.
func DailyReturn(closes []float64) []null.Float {
	out := make([]null.Float, len(closes))
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		r := (closes[i] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out[i] = null.FloatFrom(r)
	}
	return out
}

// ReturnStatistics computes the sample mean and sample standard deviation of
// the trailing windowSize entries of returns, skipping undefined entries.
// A non-positive windowSize uses the whole series. The standard deviation
// needs at least two samples.
func ReturnStatistics(returns []null.Float, windowSize int) model.ReturnStatistics {
	start := 0
	if windowSize > 0 && len(returns) > windowSize {
		start = len(returns) - windowSize
	}

	var n int
	var sum float64
	for _, r := range returns[start:] {
		if r.Valid {
			sum += r.Float64
			n++
		}
	}

	stats := model.ReturnStatistics{Samples: n}
	if n == 0 {
		return stats
	}
	mean := sum / float64(n)
	stats.Average = null.FloatFrom(mean)
	if n < 2 {
		return stats
	}

	var sq float64
	for _, r := range returns[start:] {
		if r.Valid {
			d := r.Float64 - mean
			sq += d * d
		}
	}
	stats.StdDev = null.FloatFrom(math.Sqrt(sq / float64(n-1)))
	return stats
}
