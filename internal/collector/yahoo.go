package collector

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"StockWatcher/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // aliases without a Yahoo listing of their own
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooChartURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchDailyBars fetches daily bars for [start, end). An empty or inverted
// range yields no bars.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	if !start.Before(end) {
		return nil, nil
	}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	params.Set("events", "history")
	u := f.BaseURL + url.PathEscape(f.yahooSymbol(symbol)) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "yahoo request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "yahoo fetch")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "yahoo read body")
	}
	if resp.StatusCode == http.StatusNotFound {
		// Unknown tickers answer 404 with a chart.error payload.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return parseYahooChart(body)
}

// parseYahooChart extracts daily bars from a v8 chart payload, skipping
// entries whose close is null (holidays, halted sessions).
func parseYahooChart(body []byte) ([]model.OHLCV, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("yahoo decode: invalid json")
	}
	chart := gjson.GetBytes(body, "chart")
	if e := chart.Get("error"); e.Exists() && e.Type != gjson.Null {
		return nil, errors.Errorf("yahoo api error: %s", e.Get("description").String())
	}

	result := chart.Get("result.0")
	if !result.Exists() {
		return nil, nil
	}
	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	// Bars are stamped with the exchange-local calendar day.
	offset := time.Duration(result.Get("meta.gmtoffset").Int()) * time.Second

	bars := make([]model.OHLCV, 0, len(timestamps))
	for i, ts := range timestamps {
		c := at(closes, i)
		if c.Type != gjson.Number {
			continue
		}
		bars = append(bars, model.OHLCV{
			Date:   model.CalendarDate(time.Unix(ts.Int(), 0).UTC().Add(offset)),
			Open:   at(opens, i).Float(),
			High:   at(highs, i).Float(),
			Low:    at(lows, i).Float(),
			Close:  c.Float(),
			Volume: at(volumes, i).Float(),
		})
	}
	return model.Normalize(bars), nil
}

func at(values []gjson.Result, i int) gjson.Result {
	if i < len(values) {
		return values[i]
	}
	return gjson.Result{}
}
