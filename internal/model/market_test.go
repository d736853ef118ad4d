package model

import (
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func TestNormalize(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 30, 0, 0, time.UTC) }
	bars := []OHLCV{
		{Date: day(5, 14), Close: 3},
		{Date: day(4, 14), Close: 2},
		{Date: day(5, 20), Close: 4},
		{Date: day(1, 9), Close: 1},
	}

	out := Normalize(bars)
	assert.Equal(t, len(out), 3)
	assert.Equal(t, out[0].Close, 1.0)
	assert.Equal(t, out[1].Close, 2.0)
	// The later duplicate of a date wins.
	assert.Equal(t, out[2].Close, 4.0)
	assert.Equal(t, out[2].Date, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	// Input is left untouched.
	assert.Equal(t, bars[0].Close, 3.0)
	assert.Equal(t, len(Normalize(nil)), 0)
}

func TestPriceSeries(t *testing.T) {
	var empty *PriceSeries
	assert.True(t, empty.Empty())

	s := NewPriceSeries("AAPL", []OHLCV{
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Close: 11},
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 10},
	}, time.Now())
	assert.Equal(t, s.Len(), 2)
	assert.Equal(t, s.Closes()[0], 10.0)
	assert.Equal(t, s.Dates()[1], "2024-03-02")
}

func TestNewAnalysisRequest(t *testing.T) {
	start := time.Date(2022, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	req, err := NewAnalysisRequest("  msft ", start, end)
	assert.NoError(t, err)
	assert.Equal(t, req.Symbol, "MSFT")
	assert.Equal(t, req.Start, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, req.String(), "MSFT 2022-01-01..2024-01-01")

	// An inverted range is left for the data source to answer.
	_, err = NewAnalysisRequest("MSFT", end, start)
	assert.NoError(t, err)

	_, err = NewAnalysisRequest("   ", start, end)
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = NewAnalysisRequest("MSFT", time.Time{}, end)
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = NewAnalysisRequest("ABCDEFGHIJKLMNOPQRSTUVWXYZ", start, end)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestParseDate(t *testing.T) {
	def := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("", def)
	assert.NoError(t, err)
	assert.Equal(t, got, def)

	got, err = ParseDate("2023-06-30", def)
	assert.NoError(t, err)
	assert.Equal(t, got, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC))

	_, err = ParseDate("30/06/2023", def)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}
