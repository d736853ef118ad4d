// Package runner executes analysis runs. Starting a run supersedes the run
// in flight: its context is cancelled and its result discarded.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"StockWatcher/internal/collector"
	"StockWatcher/internal/metrics"
	"StockWatcher/internal/model"
	"StockWatcher/internal/presenter"
)

// ErrSuperseded is returned by a run that a newer run replaced.
var ErrSuperseded = errors.New("run superseded by a newer request")

// Analyzer computes an analysis for a request; *collector.Collector
// satisfies it.
type Analyzer interface {
	Collect(ctx context.Context, req model.AnalysisRequest) (*model.Analysis, error)
}

// RunObserver records run outcomes; *metrics.Metrics satisfies it.
type RunObserver interface {
	ObserveRun(outcome string, d time.Duration)
}

// Runner serialises analysis runs for one user.
type Runner struct {
	analyzer   Analyzer
	observer   RunObserver
	logger     zerolog.Logger
	generation atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Runner. observer may be nil.
func New(analyzer Analyzer, observer RunObserver, logger zerolog.Logger) *Runner {
	return &Runner{
		analyzer: analyzer,
		observer: observer,
		logger:   logger.With().Str("component", "runner").Logger(),
	}
}

// Run performs one fetch, compute and present pass. A failed or empty fetch
// is not an error: it yields the unavailable dashboard. If another Run
// starts before this one finishes, this one returns ErrSuperseded.
func (r *Runner) Run(ctx context.Context, req model.AnalysisRequest) (*presenter.Dashboard, error) {
	begin := time.Now()
	gen, runCtx := r.begin(ctx)
	defer r.finish(gen)

	logger := r.logger.With().Str("run_id", uuid.NewString()).Int64("generation", gen).
		Str("request", req.String()).Logger()
	logger.Info().Msg("run started")

	dash, err := r.run(runCtx, req)
	if r.generation.Load() != gen {
		logger.Info().Msg("run superseded, result discarded")
		r.observe(metrics.OutcomeSuperseded, begin)
		return nil, ErrSuperseded
	}

	switch {
	case err != nil:
		logger.Error().Err(err).Msg("run failed")
		r.observe(metrics.OutcomeError, begin)
		return nil, err
	case !dash.Available():
		logger.Info().Msg("no data for request")
		r.observe(metrics.OutcomeUnavailable, begin)
	default:
		logger.Info().Dur("took", time.Since(begin)).Msg("run finished")
		r.observe(metrics.OutcomeOK, begin)
	}
	return dash, nil
}

func (r *Runner) run(ctx context.Context, req model.AnalysisRequest) (*presenter.Dashboard, error) {
	analysis, err := r.analyzer.Collect(ctx, req)
	if err != nil {
		if errors.Is(err, collector.ErrDataUnavailable) {
			return presenter.Unavailable(req), nil
		}
		return nil, err
	}
	dash, err := presenter.Build(analysis)
	if errors.Is(err, presenter.ErrNoData) {
		return presenter.Unavailable(req), nil
	}
	return dash, err
}

// begin cancels the run in flight and returns the new generation with its
// cancellable context.
func (r *Runner) begin(ctx context.Context) (int64, context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Bump the generation first so the cancelled run sees itself as stale.
	gen := r.generation.Inc()
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	return gen, runCtx
}

func (r *Runner) finish(gen int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation.Load() == gen && r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Runner) observe(outcome string, begin time.Time) {
	if r.observer != nil {
		r.observer.ObserveRun(outcome, time.Since(begin))
	}
}
