package presenter

import (
	"errors"
	"fmt"

	"StockWatcher/internal/model"
)

// NoDataMessage is shown when the requested ticker and range yield no bars.
const NoDataMessage = "No data found for the ticker symbol. Please check the input."

// ErrNoData is returned when an analysis holds no bars.
var ErrNoData = errors.New("no data")

// Dashboard is everything the rendering layer draws for one run.
type Dashboard struct {
	Symbol     string           `json:"symbol"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Message    string           `json:"message,omitempty"`
	Preview    []PreviewRow     `json:"preview,omitempty"`
	PriceChart *Chart           `json:"price_chart,omitempty"`
	Statistics *StatisticsTable `json:"statistics,omitempty"`
	RSIChart   *Chart           `json:"rsi_chart,omitempty"`
	Summary    *Summary         `json:"summary,omitempty"`
}

// Available reports whether the dashboard carries charts.
func (d *Dashboard) Available() bool { return d.Message == "" }

// TraceCount returns the number of chart traces.
func (d *Dashboard) TraceCount() int {
	n := 0
	if d.PriceChart != nil {
		n += len(d.PriceChart.Traces)
	}
	if d.RSIChart != nil {
		n += len(d.RSIChart.Traces)
	}
	return n
}

// Build assembles the dashboard of a computed analysis.
func Build(a *model.Analysis) (*Dashboard, error) {
	if a == nil || a.Series.Empty() {
		return nil, ErrNoData
	}
	p := a.Params
	w := ChartWindow(a, p.ChartWindow)
	stats := BuildStatisticsTable(a.Stats.Average, a.Stats.StdDev)
	stats.Title = StatisticsTitle(p.StatsWindow)
	summary := buildSummary(a, w)

	return &Dashboard{
		Symbol:  a.Request.Symbol,
		Start:   a.Request.Start.Format(model.DateLayout),
		End:     a.Request.End.Format(model.DateLayout),
		Preview: BuildPreview(a.Series, p.PreviewRows),
		PriceChart: &Chart{
			Title:  fmt.Sprintf("Close Price with SMA (%d & %d Days)", p.SMAFast, p.SMASlow),
			Traces: BuildPriceChartTraces(w, p.SMAFast, p.SMASlow),
		},
		Statistics: &stats,
		RSIChart: &Chart{
			Title:  "RSI (Relative Strength Index)",
			Traces: []Trace{BuildRSIChartTrace(a.Series, a.Derived.RSI)},
		},
		Summary: &summary,
	}, nil
}

// Unavailable returns the dashboard shown when no data could be fetched. It
// carries the user message and no traces.
func Unavailable(req model.AnalysisRequest) *Dashboard {
	d := &Dashboard{
		Symbol:  req.Symbol,
		Message: NoDataMessage,
	}
	if !req.Start.IsZero() {
		d.Start = req.Start.Format(model.DateLayout)
	}
	if !req.End.IsZero() {
		d.End = req.End.Format(model.DateLayout)
	}
	return d
}
