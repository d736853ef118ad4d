package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"StockWatcher/internal/calculator"
	"StockWatcher/internal/model"
)

// ErrDataUnavailable is returned when a fetch fails or yields no bars.
var ErrDataUnavailable = errors.New("data unavailable")

// Observer receives fetch timings; metrics.Metrics satisfies it.
type Observer interface {
	ObserveFetch(source string, d time.Duration, err error)
}

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Params   model.Params
	Observer Observer
	Logger   zerolog.Logger
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, params model.Params, logger zerolog.Logger) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Params:  params,
		Logger:  logger.With().Str("component", "collector").Str("source", fetcher.Name()).Logger(),
		Now:     time.Now,
	}
}

// Collect fetches the requested bars and computes all indicators. A failed
// or empty fetch returns an error wrapping ErrDataUnavailable and no analysis.
func (c *Collector) Collect(ctx context.Context, req model.AnalysisRequest) (*model.Analysis, error) {
	begin := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, req.Symbol, req.Start, req.End)
	if c.Observer != nil {
		c.Observer.ObserveFetch(c.Fetcher.Name(), time.Since(begin), err)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.Logger.Warn().Stack().Err(err).Str("symbol", req.Symbol).
			Str("range", formatRange(req.Start, req.End)).Msg("fetch daily bars failed")
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	series := model.NewPriceSeries(req.Symbol, bars, c.Now())
	if series.Empty() {
		c.Logger.Info().Str("symbol", req.Symbol).
			Str("range", formatRange(req.Start, req.End)).Msg("no bars returned")
		return nil, fmt.Errorf("%w: no bars for %s", ErrDataUnavailable, req)
	}

	derived := calculator.Derive(series, c.Params)
	stats := calculator.ReturnStatistics(derived.DailyReturn, c.Params.StatsWindow)

	c.Logger.Debug().Str("symbol", req.Symbol).Int("bars", series.Len()).
		Int("return_samples", stats.Samples).Msg("analysis computed")

	return &model.Analysis{
		Request: req,
		Series:  series,
		Derived: derived,
		Stats:   stats,
		Params:  c.Params,
	}, nil
}

func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s..%s", start.Format(model.DateLayout), end.Format(model.DateLayout))
}
