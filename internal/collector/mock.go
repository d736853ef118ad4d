package collector

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"StockWatcher/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
	// Delay blocks each fetch until it elapses or the context is done.
	Delay time.Duration
	Calls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, _ string, start, end time.Time) ([]model.OHLCV, error) {
	m.Calls.Inc()
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, start, end), nil
}

// GenerateMockBars produces one weekday bar per day in [start, end) drifting
// around basePrice.
func GenerateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	var bars []model.OHLCV
	i := 0
	for d := model.CalendarDate(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%40-20)*0.001)
		bars = append(bars, model.OHLCV{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}

// RampBars produces n consecutive daily bars whose closes rise by step from
// first, starting at start.
func RampBars(start time.Time, n int, first, step float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := first + float64(i)*step
		bars[i] = model.OHLCV{
			Date:   model.CalendarDate(start).AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}
