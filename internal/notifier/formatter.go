package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/guregu/null/v6"

	"StockWatcher/internal/presenter"
)

// FormatDashboard renders a dashboard as a Telegram HTML message.
func FormatDashboard(d *presenter.Dashboard) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s → %s\n\n", html.EscapeString(d.Symbol), d.Start, d.End))
	if !d.Available() {
		b.WriteString(d.Message)
		return b.String()
	}

	s := d.Summary
	b.WriteString(fmt.Sprintf("Last close: %.2f (%s)\n", s.LastClose, s.LastDate))
	b.WriteString(fmt.Sprintf("Window range: %.2f – %.2f\n", s.WindowLow, s.WindowHigh))
	b.WriteString(fmt.Sprintf("SMA fast: %s | SMA slow: %s\n", formatPrice(s.LastSMAFast), formatPrice(s.LastSMASlow)))
	b.WriteString(fmt.Sprintf("RSI: %s\n\n", formatPrice(s.LastRSI)))

	b.WriteString("📈 <b>Return statistics</b>\n")
	for i, col := range d.Statistics.Columns {
		b.WriteString(fmt.Sprintf("  %s: %s\n", col, formatPercent(d.Statistics.Values[i])))
	}

	if n := len(d.Preview); n > 0 {
		b.WriteString("\n<b>Recent bars</b>\n<pre>")
		for _, r := range d.Preview {
			b.WriteString(fmt.Sprintf("%s %9.2f %9.2f %9.2f %9.2f\n", r.Date, r.Open, r.High, r.Low, r.Close))
		}
		b.WriteString("</pre>")
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp(defaultSymbol string) string {
	return fmt.Sprintf("Commands:\n"+
		"• /analyze TICKER [START] [END] (dates YYYY-MM-DD)\n"+
		"• /analyze with no ticker uses %s\n"+
		"• /help", html.EscapeString(defaultSymbol))
}

func formatPrice(v null.Float) string {
	if !v.Valid {
		return presenter.Undefined
	}
	return fmt.Sprintf("%.2f", v.Float64)
}

func formatPercent(v null.Float) string {
	if !v.Valid {
		return presenter.Undefined
	}
	return fmt.Sprintf("%.4f%%", v.Float64*100)
}
