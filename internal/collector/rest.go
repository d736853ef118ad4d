package collector

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"StockWatcher/internal/model"
)

// RESTFetcher implements Fetcher against a generic daily-bars REST API
// returning a JSON array of {timestamp, open, high, low, close, volume}.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", start.Format(model.DateLayout))
	params.Set("to", end.Format(model.DateLayout))
	endpoint := f.BaseURL + "/api/v1/bars/daily?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "bars request")
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch bars")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read bars body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("decode bars: invalid json")
	}

	data := gjson.ParseBytes(body).Array()
	bars := make([]model.OHLCV, 0, len(data))
	for _, d := range data {
		bars = append(bars, model.OHLCV{
			Date:   time.Unix(d.Get("timestamp").Int(), 0).UTC(),
			Open:   d.Get("open").Float(),
			High:   d.Get("high").Float(),
			Low:    d.Get("low").Float(),
			Close:  d.Get("close").Float(),
			Volume: d.Get("volume").Float(),
		})
	}
	// Enforce the requested half-open range; some providers treat "to" as inclusive.
	kept := bars[:0]
	for _, b := range bars {
		if !b.Date.Before(start) && b.Date.Before(end) {
			kept = append(kept, b)
		}
	}
	return model.Normalize(kept), nil
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
