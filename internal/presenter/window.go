// Package presenter turns computed analyses into chart traces and tables
// ready for a rendering layer.
package presenter

import "StockWatcher/internal/model"

// RecentWindow returns the last n entries of s in their original order. It
// returns all of s when s is shorter than n and never pads. The result
// shares storage with s.
func RecentWindow[T any](s []T, n int) []T {
	if n <= 0 {
		return s[:0:0]
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// ChartWindow restricts the bars and moving averages of a to the most
// recent n entries. The averages were computed over the full history.
func ChartWindow(a *model.Analysis, n int) model.DisplayWindow {
	return model.DisplayWindow{
		Bars:    RecentWindow(a.Series.Bars, n),
		SMAFast: RecentWindow(a.Derived.SMAFast, n),
		SMASlow: RecentWindow(a.Derived.SMASlow, n),
	}
}
