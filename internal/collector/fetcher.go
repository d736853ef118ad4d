package collector

import (
	"context"
	"time"

	"StockWatcher/internal/model"
)

// Fetcher defines the interface for fetching daily price bars.
// Implementations return bars for the half-open range [start, end).
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
