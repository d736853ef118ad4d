package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"

	"StockWatcher/internal/model"
)

func testRequest(t *testing.T, symbol string) model.AnalysisRequest {
	t.Helper()
	req, err := model.NewAnalysisRequest(symbol,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	return req
}

func TestCollectRampSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &MockFetcher{DailyData: RampBars(start, 120, 100, 1)}
	c := NewCollector(fetcher, model.DefaultParams(), zerolog.Nop())

	analysis, err := c.Collect(context.Background(), testRequest(t, "ramp"))
	assert.NoError(t, err)
	assert.Equal(t, analysis.Series.Symbol, "RAMP")
	assert.Equal(t, analysis.Series.Len(), 120)
	assert.Equal(t, len(analysis.Derived.SMAFast), 120)
	assert.Equal(t, analysis.Derived.SMAFast[119].Float64, 194.5)
	assert.Equal(t, analysis.Derived.SMASlow[119].Float64, 169.5)
	assert.Equal(t, analysis.Derived.RSI[119].Float64, 100.0)
	// 90 trailing returns, all defined.
	assert.Equal(t, analysis.Stats.Samples, 90)
	assert.True(t, analysis.Stats.StdDev.Valid)
	assert.Equal(t, fetcher.Calls.Load(), int64(1))
}

func TestCollectShortSeries(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &MockFetcher{DailyData: RampBars(start, 30, 10, 0.5)}
	c := NewCollector(fetcher, model.DefaultParams(), zerolog.Nop())

	analysis, err := c.Collect(context.Background(), testRequest(t, "SHORT"))
	assert.NoError(t, err)
	for _, v := range analysis.Derived.SMAFast {
		assert.False(t, v.Valid)
	}
	for _, v := range analysis.Derived.SMASlow {
		assert.False(t, v.Valid)
	}
	assert.Equal(t, analysis.Stats.Samples, 29)
}

func TestCollectEmptyFetch(t *testing.T) {
	c := NewCollector(&MockFetcher{DailyData: []model.OHLCV{}}, model.DefaultParams(), zerolog.Nop())

	analysis, err := c.Collect(context.Background(), testRequest(t, "NONE"))
	assert.Nil(t, analysis)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestCollectFailedFetch(t *testing.T) {
	c := NewCollector(&MockFetcher{Err: errors.New("connection reset")}, model.DefaultParams(), zerolog.Nop())

	analysis, err := c.Collect(context.Background(), testRequest(t, "AAPL"))
	assert.Nil(t, analysis)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
}

func TestCollectFailedFetchKeepsCause(t *testing.T) {
	// The fetcher timed out on its own deadline; the caller's context is live.
	c := NewCollector(&MockFetcher{Err: context.DeadlineExceeded}, model.DefaultParams(), zerolog.Nop())

	_, err := c.Collect(context.Background(), testRequest(t, "AAPL"))
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCollectCancelled(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100, Delay: time.Minute}, model.DefaultParams(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Collect(ctx, testRequest(t, "AAPL"))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrDataUnavailable))
}

type recordingObserver struct {
	source string
	err    error
	calls  int
}

func (r *recordingObserver) ObserveFetch(source string, _ time.Duration, err error) {
	r.source = source
	r.err = err
	r.calls++
}

func TestCollectObservesFetch(t *testing.T) {
	obs := &recordingObserver{}
	c := NewCollector(&MockFetcher{Price: 50}, model.DefaultParams(), zerolog.Nop())
	c.Observer = obs

	_, err := c.Collect(context.Background(), testRequest(t, "AAPL"))
	assert.NoError(t, err)
	assert.Equal(t, obs.calls, 1)
	assert.Equal(t, obs.source, "mock")
	assert.NoError(t, obs.err)
}

func TestGenerateMockBarsSkipsWeekends(t *testing.T) {
	// 2024-01-06 is a Saturday.
	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	bars := GenerateMockBars(100, start, start.AddDate(0, 0, 4))
	assert.Equal(t, len(bars), 2)
	assert.Equal(t, bars[0].Date.Weekday(), time.Friday)
	assert.Equal(t, bars[1].Date.Weekday(), time.Monday)
}
