package calculator

import (
	"testing"

	"github.com/guregu/null/v6"
	"github.com/peterldowns/testy/assert"
)

func rampCloses(n int, start float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)
	}
	return closes
}

func TestSimpleMovingAverage(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	sma := SimpleMovingAverage(closes, 3)

	assert.Equal(t, len(sma), len(closes))
	assert.False(t, sma[0].Valid)
	assert.False(t, sma[1].Valid)
	assert.Equal(t, sma[2], null.FloatFrom(2))
	assert.Equal(t, sma[3], null.FloatFrom(3))
	assert.Equal(t, sma[4], null.FloatFrom(4))
}

func TestSimpleMovingAverageWindowLongerThanSeries(t *testing.T) {
	closes := rampCloses(30, 100)
	for _, window := range []int{31, 50, 100} {
		sma := SimpleMovingAverage(closes, window)
		assert.Equal(t, len(sma), len(closes))
		for i, v := range sma {
			if v.Valid {
				t.Fatalf("window %d: expected undefined at %d, got %v", window, i, v.Float64)
			}
		}
	}
}

func TestSimpleMovingAverageDegenerateInput(t *testing.T) {
	assert.Equal(t, len(SimpleMovingAverage(nil, 5)), 0)

	sma := SimpleMovingAverage([]float64{1, 2}, 0)
	assert.Equal(t, len(sma), 2)
	assert.False(t, sma[0].Valid)
	assert.False(t, sma[1].Valid)

	exact := SimpleMovingAverage([]float64{2, 4}, 2)
	assert.False(t, exact[0].Valid)
	assert.Equal(t, exact[1], null.FloatFrom(3))
}

func TestSimpleMovingAverageRamp(t *testing.T) {
	// 100, 101, ..., 219: the last 50 closes are 170..219.
	closes := rampCloses(120, 100)
	sma := SimpleMovingAverage(closes, 50)

	assert.False(t, sma[48].Valid)
	assert.True(t, sma[49].Valid)
	assert.Equal(t, sma[49].Float64, 124.5)
	assert.Equal(t, sma[119].Float64, 194.5)
}
