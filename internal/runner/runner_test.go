package runner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"

	"StockWatcher/internal/collector"
	"StockWatcher/internal/metrics"
	"StockWatcher/internal/model"
	"StockWatcher/internal/presenter"
)

func request(t *testing.T, symbol string) model.AnalysisRequest {
	t.Helper()
	req, err := model.NewAnalysisRequest(symbol,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	return req
}

type countingObserver struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingObserver) ObserveRun(outcome string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = make(map[string]int)
	}
	c.outcomes[outcome]++
}

func (c *countingObserver) count(outcome string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes[outcome]
}

func newCollector(f collector.Fetcher) *collector.Collector {
	return collector.NewCollector(f, model.DefaultParams(), zerolog.Nop())
}

func TestRun(t *testing.T) {
	obs := &countingObserver{}
	r := New(newCollector(&collector.MockFetcher{Price: 150}), obs, zerolog.Nop())

	dash, err := r.Run(context.Background(), request(t, "aapl"))
	assert.NoError(t, err)
	assert.True(t, dash.Available())
	assert.Equal(t, dash.Symbol, "AAPL")
	assert.Equal(t, dash.TraceCount(), 4)
	assert.Equal(t, obs.count(metrics.OutcomeOK), 1)
}

func TestRunEmptyFetch(t *testing.T) {
	obs := &countingObserver{}
	r := New(newCollector(&collector.MockFetcher{DailyData: []model.OHLCV{}}), obs, zerolog.Nop())

	dash, err := r.Run(context.Background(), request(t, "NOPE"))
	assert.NoError(t, err)
	assert.Equal(t, dash.Message, presenter.NoDataMessage)
	assert.Equal(t, dash.TraceCount(), 0)
	assert.Equal(t, obs.count(metrics.OutcomeUnavailable), 1)
}

func TestRunFailedFetch(t *testing.T) {
	r := New(newCollector(&collector.MockFetcher{Err: errors.New("dial tcp: timeout")}), nil, zerolog.Nop())

	dash, err := r.Run(context.Background(), request(t, "AAPL"))
	assert.NoError(t, err)
	assert.Equal(t, dash.Message, presenter.NoDataMessage)
	assert.Equal(t, dash.TraceCount(), 0)
}

// blockingAnalyzer holds the first call until its context is done.
type blockingAnalyzer struct {
	started chan struct{}
	next    Analyzer
	once    sync.Once
}

func (b *blockingAnalyzer) Collect(ctx context.Context, req model.AnalysisRequest) (*model.Analysis, error) {
	first := false
	b.once.Do(func() { first = true })
	if first {
		close(b.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return b.next.Collect(ctx, req)
}

func TestRunSupersedesInFlight(t *testing.T) {
	obs := &countingObserver{}
	analyzer := &blockingAnalyzer{
		started: make(chan struct{}),
		next:    newCollector(&collector.MockFetcher{Price: 100}),
	}
	r := New(analyzer, obs, zerolog.Nop())

	stale := request(t, "OLD")
	staleErr := make(chan error, 1)
	go func() {
		_, err := r.Run(context.Background(), stale)
		staleErr <- err
	}()
	<-analyzer.started

	dash, err := r.Run(context.Background(), request(t, "NEW"))
	assert.NoError(t, err)
	assert.Equal(t, dash.Symbol, "NEW")

	select {
	case err := <-staleErr:
		assert.True(t, errors.Is(err, ErrSuperseded))
	case <-time.After(5 * time.Second):
		t.Fatal("stale run was not cancelled")
	}
	assert.Equal(t, obs.count(metrics.OutcomeSuperseded), 1)
	assert.Equal(t, obs.count(metrics.OutcomeOK), 1)
}

func TestRunParentCancelled(t *testing.T) {
	r := New(newCollector(&collector.MockFetcher{Price: 100, Delay: time.Minute}), nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, request(t, "AAPL"))
	assert.True(t, errors.Is(err, context.Canceled))
}
