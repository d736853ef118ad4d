package presenter

import (
	"fmt"
	"strconv"

	"github.com/guregu/null/v6"

	"StockWatcher/internal/calculator"
	"StockWatcher/internal/model"
)

// Statistics table column names.
const (
	ColumnAverageReturn = "Average Daily Return"
	ColumnStdDevReturn  = "Standard Deviation of Return"
)

// Undefined is the text rendering of a value that could not be computed.
const Undefined = "undefined"

// StatisticsTable is a single-row key/value table.
type StatisticsTable struct {
	Title   string       `json:"title,omitempty"`
	Columns []string     `json:"columns"`
	Values  []null.Float `json:"values"`
}

// BuildStatisticsTable packages the return statistics as-is.
func BuildStatisticsTable(avg, std null.Float) StatisticsTable {
	return StatisticsTable{
		Columns: []string{ColumnAverageReturn, ColumnStdDevReturn},
		Values:  []null.Float{avg, std},
	}
}

// StatisticsTitle names the return window the statistics cover.
func StatisticsTitle(window int) string {
	if window <= 0 {
		return "Statistics for All Days"
	}
	return fmt.Sprintf("Statistics for Last %d Days", window)
}

// Text renders each value, using Undefined for invalid ones.
func (t StatisticsTable) Text() []string {
	out := make([]string, len(t.Values))
	for i, v := range t.Values {
		out[i] = FormatValue(v)
	}
	return out
}

// FormatValue renders v with full precision or Undefined.
func FormatValue(v null.Float) string {
	if !v.Valid {
		return Undefined
	}
	return strconv.FormatFloat(v.Float64, 'g', -1, 64)
}

// PreviewRow is one raw bar in the preview table.
type PreviewRow struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// BuildPreview returns the most recent n raw bars.
func BuildPreview(series *model.PriceSeries, n int) []PreviewRow {
	bars := RecentWindow(series.Bars, n)
	rows := make([]PreviewRow, len(bars))
	for i, b := range bars {
		rows[i] = PreviewRow{
			Date:   b.Date.Format(model.DateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return rows
}

// Summary holds headline figures of the chart window.
type Summary struct {
	LastClose   float64    `json:"last_close"`
	LastDate    string     `json:"last_date"`
	WindowHigh  float64    `json:"window_high"`
	WindowLow   float64    `json:"window_low"`
	LastSMAFast null.Float `json:"last_sma_fast"`
	LastSMASlow null.Float `json:"last_sma_slow"`
	LastRSI     null.Float `json:"last_rsi"`
}

func buildSummary(a *model.Analysis, w model.DisplayWindow) Summary {
	last := len(a.Series.Bars) - 1
	s := Summary{
		LastClose:   a.Series.Bars[last].Close,
		LastDate:    a.Series.Bars[last].Date.Format(model.DateLayout),
		LastSMAFast: valueAt(a.Derived.SMAFast, last),
		LastSMASlow: valueAt(a.Derived.SMASlow, last),
		LastRSI:     valueAt(a.Derived.RSI, last),
	}
	if high, low, err := calculator.PriceRange(w.Bars); err == nil {
		s.WindowHigh, s.WindowLow = high, low
	}
	return s
}

// valueAt returns col[i], or undefined when col does not reach i.
func valueAt(col []null.Float, i int) null.Float {
	if i < 0 || i >= len(col) {
		return null.Float{}
	}
	return col[i]
}
