package presenter

import (
	"fmt"

	"github.com/guregu/null/v6"

	"StockWatcher/internal/model"
)

// Trace modes, named as the Plotly scatter trace expects them.
const (
	ModeLines        = "lines"
	ModeLinesMarkers = "lines+markers"
)

// Trace is one named x/y series of a chart. Undefined y values marshal to
// null and render as gaps.
type Trace struct {
	Name string       `json:"name"`
	Type string       `json:"type"`
	Mode string       `json:"mode"`
	X    []string     `json:"x"`
	Y    []null.Float `json:"y"`
}

// Chart is a titled list of traces.
type Chart struct {
	Title  string  `json:"title"`
	Traces []Trace `json:"traces"`
}

func newTrace(name, mode string, x []string, y []null.Float) Trace {
	return Trace{Name: name, Type: "scatter", Mode: mode, X: x, Y: y}
}

// BuildPriceChartTraces returns the close price trace and one trace per
// moving average, all over the window's dates.
func BuildPriceChartTraces(w model.DisplayWindow, fast, slow int) []Trace {
	x := model.FormatDates(w.Bars)
	closes := make([]null.Float, len(w.Bars))
	for i, b := range w.Bars {
		closes[i] = null.FloatFrom(b.Close)
	}
	return []Trace{
		newTrace("Close Price", ModeLinesMarkers, x, closes),
		newTrace(fmt.Sprintf("SMA %d", fast), ModeLines, x, alignTo(w.SMAFast, len(x))),
		newTrace(fmt.Sprintf("SMA %d", slow), ModeLines, x, alignTo(w.SMASlow, len(x))),
	}
}

// BuildRSIChartTrace returns one RSI trace spanning the whole series.
func BuildRSIChartTrace(series *model.PriceSeries, rsi []null.Float) Trace {
	x := series.Dates()
	return newTrace("RSI", ModeLines, x, alignTo(rsi, len(x)))
}

// alignTo copies y into a slice of length n, leaving missing entries
// undefined.
func alignTo(y []null.Float, n int) []null.Float {
	out := make([]null.Float, n)
	copy(out, y)
	return out
}
