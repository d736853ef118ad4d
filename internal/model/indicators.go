package model

import "github.com/guregu/null/v6"

// DerivedSeries holds indicator columns aligned index-for-index with
// PriceSeries.Bars. An invalid null.Float marks a warm-up or undefined entry.
type DerivedSeries struct {
	SMAFast     []null.Float
	SMASlow     []null.Float
	DailyReturn []null.Float
	RSI         []null.Float
}

// ReturnStatistics summarises a trailing window of daily returns.
type ReturnStatistics struct {
	Average null.Float `json:"average"`
	StdDev  null.Float `json:"std_dev"`
	Samples int        `json:"samples"`
}

// Params configures the indicator windows of one analysis run.
type Params struct {
	SMAFast     int
	SMASlow     int
	RSIPeriod   int
	StatsWindow int
	ChartWindow int
	PreviewRows int
}

// DefaultParams returns the dashboard's standard windows.
func DefaultParams() Params {
	return Params{
		SMAFast:     50,
		SMASlow:     100,
		RSIPeriod:   14,
		StatsWindow: 90,
		ChartWindow: 30,
		PreviewRows: 10,
	}
}

// Analysis is the computed, not yet presented, result of one run.
type Analysis struct {
	Request AnalysisRequest
	Series  *PriceSeries
	Derived DerivedSeries
	Stats   ReturnStatistics
	Params  Params
}

// DisplayWindow is a view over the most recent entries of a series and its
// aligned derived columns. Slices share storage with the analysis.
type DisplayWindow struct {
	Bars    []OHLCV
	SMAFast []null.Float
	SMASlow []null.Float
}
