package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Pipeline metrics
	fetchesTotal     *prometheus.CounterVec
	backtestsTotal   *prometheus.CounterVec
	simulationsTotal *prometheus.CounterVec
	tradesExecuted   prometheus.Counter
	sessionsActive   prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),

		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quant_fetches_total",
				Help: "Total number of market data fetches",
			},
			[]string{"status"},
		),
		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quant_backtests_total",
				Help: "Total number of backtests",
			},
			[]string{"status"},
		),
		simulationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quant_simulations_total",
				Help: "Total number of paper trading simulations",
			},
			[]string{"status"},
		),
		tradesExecuted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quant_paper_trades_executed_total",
				Help: "Total number of simulated trades executed",
			},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quant_sessions_active",
				Help: "Number of live sessions",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)
	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.simulationsTotal)
	reg.MustRegister(r.tradesExecuted)
	reg.MustRegister(r.sessionsActive)

	return r
}

// RecordRequest records a completed HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	r.httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments the in-flight request gauge.
func (r *Registry) InFlightInc() { r.httpRequestsInFlight.Inc() }

// InFlightDec decrements the in-flight request gauge.
func (r *Registry) InFlightDec() { r.httpRequestsInFlight.Dec() }

// RecordFetch records a data fetch outcome.
func (r *Registry) RecordFetch(status string) {
	r.fetchesTotal.WithLabelValues(status).Inc()
}

// RecordBacktest records a backtest outcome.
func (r *Registry) RecordBacktest(status string) {
	r.backtestsTotal.WithLabelValues(status).Inc()
}

// RecordSimulation records a simulation outcome along with the number
// of trades it executed.
func (r *Registry) RecordSimulation(status string, trades int) {
	r.simulationsTotal.WithLabelValues(status).Inc()
	r.tradesExecuted.Add(float64(trades))
}

// SetActiveSessions updates the live session gauge.
func (r *Registry) SetActiveSessions(n int) {
	r.sessionsActive.Set(float64(n))
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
