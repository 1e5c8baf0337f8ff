// Package yahoo implements the market data provider against the Yahoo
// Finance v8 chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/core"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// validSymbol matches stock symbols like AAPL, MSFT, BRK-B, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9\-]{1,10}(\.[A-Za-z]{1,4})?$`)

func validateSymbol(symbol string) error {
	if symbol == "" {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("symbol cannot be empty"))
	}
	if !validSymbol.MatchString(symbol) {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("invalid symbol format: %s", symbol))
	}
	return nil
}

// Yahoo is the Yahoo Finance history provider.
type Yahoo struct {
	client  *http.Client
	baseURL string
}

// Option configures a Yahoo provider.
type Option func(*Yahoo)

// WithBaseURL overrides the chart endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(y *Yahoo) { y.baseURL = url }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(y *Yahoo) { y.client.Timeout = d }
}

// New creates a new Yahoo provider.
func New(opts ...Option) *Yahoo {
	y := &Yahoo{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// FetchHistory fetches daily OHLCV bars for [start, end]. Bars with
// null quotes (halted or partial days) are skipped.
func (y *Yahoo) FetchHistory(ctx context.Context, symbol string, start, end time.Time) (core.PriceSeries, error) {
	if err := validateSymbol(symbol); err != nil {
		return core.PriceSeries{}, err
	}

	url := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		y.baseURL, symbol, start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrProviderFailed, err)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.PriceSeries{}, core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("decoding response: %w", err))
	}

	if result.Chart.Error != nil {
		return core.PriceSeries{}, core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("yahoo error: %s", result.Chart.Error.Description))
	}

	if len(result.Chart.Result) == 0 {
		return core.PriceSeries{}, core.ErrNoData
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return core.PriceSeries{}, core.ErrNoData
	}
	quotes := r.Indicators.Quote[0]
	if err := quotes.checkLengths(len(r.Timestamp)); err != nil {
		return core.PriceSeries{}, err
	}

	bars := make([]core.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if quotes.Open[i] == nil || quotes.High[i] == nil ||
			quotes.Low[i] == nil || quotes.Close[i] == nil {
			continue
		}
		bars = append(bars, core.Bar{
			Date:   time.Unix(int64(ts), 0).UTC(),
			Open:   *quotes.Open[i],
			High:   *quotes.High[i],
			Low:    *quotes.Low[i],
			Close:  *quotes.Close[i],
			Volume: int64(deref(quotes.Volume[i])),
		})
	}

	if len(bars) == 0 {
		return core.PriceSeries{}, core.ErrNoData
	}

	series := core.PriceSeries{Symbol: symbol, Bars: bars}
	if err := series.Validate(); err != nil {
		return core.PriceSeries{}, err
	}
	return series, nil
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}

// checkLengths verifies every quote column covers the timestamp axis.
func (q quoteIndicator) checkLengths(n int) error {
	cols := map[string]int{
		"open":   len(q.Open),
		"high":   len(q.High),
		"low":    len(q.Low),
		"close":  len(q.Close),
		"volume": len(q.Volume),
	}
	for name, l := range cols {
		if l < n {
			return core.WrapError(core.ErrProviderFailed,
				fmt.Errorf("quote column %s has %d values for %d timestamps", name, l, n))
		}
	}
	return nil
}
