package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/app"
	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	series core.PriceSeries
	err    error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchHistory(_ context.Context, symbol string, _, _ time.Time) (core.PriceSeries, error) {
	if p.err != nil {
		return core.PriceSeries{}, p.err
	}
	s := p.series
	s.Symbol = symbol
	return s, nil
}

func risingSeries(n int) core.PriceSeries {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, n)
	for i := range bars {
		price := 100 + float64(i)
		bars[i] = core.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price + 0.5,
			Low:    price - 0.5,
			Close:  price,
			Volume: 1000,
		}
	}
	return core.PriceSeries{Bars: bars}
}

func newTestServer(t *testing.T, provider *stubProvider) *httptest.Server {
	t.Helper()
	cfg := config.Defaults()
	reg := metrics.NewRegistry()
	a := app.New(cfg, provider, reg, zap.NewNop())
	srv := NewServer(cfg, a, reg, zap.NewNop())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, ok := decodeData(t, resp)["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubProvider{})

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeData(t, resp)["status"])
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, &stubProvider{})
	id := createSession(t, ts)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+id, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t, &stubProvider{})

	resp := postJSON(t, ts.URL+"/api/sessions/nope/fetch", fetchRequest{
		Symbol: "AAPL", Start: "2024-01-01", End: "2024-06-01",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFullPipelineOverHTTP(t *testing.T) {
	ts := newTestServer(t, &stubProvider{series: risingSeries(100)})
	id := createSession(t, ts)
	base := fmt.Sprintf("%s/api/sessions/%s", ts.URL, id)

	resp := postJSON(t, base+"/fetch", fetchRequest{
		Symbol: "UP", Start: "2024-01-01", End: "2024-06-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "UP", data["symbol"])
	assert.Len(t, data["bars"], 100)

	resp = postJSON(t, base+"/indicators", windowsRequest{ShortWindow: 20, LongWindow: 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)

	// warm-up values are null, later ones numbers
	smaLong, ok := data["sma_long"].([]any)
	require.True(t, ok)
	assert.Nil(t, smaLong[0])
	assert.Nil(t, smaLong[48])
	assert.NotNil(t, smaLong[49])

	resp = postJSON(t, base+"/backtest", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)

	daily, ok := data["daily_return"].([]any)
	require.True(t, ok)
	assert.Nil(t, daily[0])

	m, ok := data["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "sharpe")

	resp = postJSON(t, base+"/simulate", simulateRequest{InitialCapital: 10000})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Equal(t, float64(1), data["trades"])
	assert.Greater(t, data["final_value"].(float64), 10000.0)

	// cached views remain retrievable
	resp, err := http.Get(base + "/account")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeData(t, resp)
	assert.Len(t, data["entries"], 100)
}

func TestDescribeOverHTTP(t *testing.T) {
	ts := newTestServer(t, &stubProvider{series: risingSeries(10)})
	id := createSession(t, ts)
	base := fmt.Sprintf("%s/api/sessions/%s", ts.URL, id)

	resp, err := http.Get(base + "/describe")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, base+"/fetch", fetchRequest{
		Symbol: "UP", Start: "2024-01-01", End: "2024-02-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base + "/describe")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Len(t, data["columns"], 5)
}

func TestSimulateBeforeBacktestConflicts(t *testing.T) {
	ts := newTestServer(t, &stubProvider{series: risingSeries(100)})
	id := createSession(t, ts)
	base := fmt.Sprintf("%s/api/sessions/%s", ts.URL, id)

	resp := postJSON(t, base+"/simulate", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBacktestBeforeFetchConflicts(t *testing.T) {
	ts := newTestServer(t, &stubProvider{series: risingSeries(100)})
	id := createSession(t, ts)

	resp := postJSON(t, fmt.Sprintf("%s/api/sessions/%s/backtest", ts.URL, id), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInvalidWindowsRejected(t *testing.T) {
	ts := newTestServer(t, &stubProvider{series: risingSeries(100)})
	id := createSession(t, ts)
	base := fmt.Sprintf("%s/api/sessions/%s", ts.URL, id)

	resp := postJSON(t, base+"/fetch", fetchRequest{
		Symbol: "UP", Start: "2024-01-01", End: "2024-06-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, base+"/indicators", windowsRequest{ShortWindow: 50, LongWindow: 20})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpointExposed(t *testing.T) {
	ts := newTestServer(t, &stubProvider{})

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
