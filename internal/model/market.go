package model

import (
	"sort"
	"time"
)

// DateLayout is the calendar date layout used for requests and chart axes.
const DateLayout = "2006-01-02"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the daily bars of one ticker for one requested range.
// Bars are sorted ascending by date with no duplicate dates.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// NewPriceSeries builds a series from fetcher output, establishing date order.
func NewPriceSeries(symbol string, bars []OHLCV, fetchedAt time.Time) *PriceSeries {
	return &PriceSeries{
		Symbol:    symbol,
		Bars:      Normalize(bars),
		FetchedAt: fetchedAt,
	}
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Empty reports whether the series holds no bars.
func (s *PriceSeries) Empty() bool { return s.Len() == 0 }

// Closes returns the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates returns the bar dates formatted with DateLayout.
func (s *PriceSeries) Dates() []string {
	return FormatDates(s.Bars)
}

// FormatDates formats bar dates with DateLayout.
func FormatDates(bars []OHLCV) []string {
	dates := make([]string, len(bars))
	for i, b := range bars {
		dates[i] = b.Date.Format(DateLayout)
	}
	return dates
}

// CalendarDate truncates t to midnight UTC of its own calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Normalize sorts bars ascending by calendar date and keeps the last bar
// seen for any duplicated date.
func Normalize(bars []OHLCV) []OHLCV {
	if len(bars) == 0 {
		return nil
	}
	out := make([]OHLCV, len(bars))
	copy(out, bars)
	for i := range out {
		out[i].Date = CalendarDate(out[i].Date)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	n := 0
	for i := range out {
		if n > 0 && out[n-1].Date.Equal(out[i].Date) {
			out[n-1] = out[i]
			continue
		}
		out[n] = out[i]
		n++
	}
	return out[:n]
}
