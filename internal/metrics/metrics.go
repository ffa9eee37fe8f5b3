package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "golfleague_skins"

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	roundsCalculated    *prometheus.CounterVec
	skinsAwarded        *prometheus.CounterVec
	calculationDuration prometheus.Histogram
	workbookRounds      *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsCalculated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_calculated_total",
			Help:      "Rounds run through the skins engine.",
		}, []string{"league"}),
		skinsAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skins_awarded_total",
			Help:      "Holes won outright.",
		}, []string{"league"}),
		calculationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent calculating and storing one round.",
			Buckets:   prometheus.DefBuckets,
		}),
		workbookRounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workbook_rounds_imported_total",
			Help:      "Rounds imported from scoring workbooks.",
		}, []string{"league"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.roundsCalculated,
		m.skinsAwarded,
		m.calculationDuration,
		m.workbookRounds,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// RoundCalculated records one engine run
func (m *Metrics) RoundCalculated(league string, skins int, took time.Duration) {
	if m == nil {
		return
	}
	m.roundsCalculated.WithLabelValues(league).Inc()
	m.skinsAwarded.WithLabelValues(league).Add(float64(skins))
	m.calculationDuration.Observe(took.Seconds())
}

// RoundsImported records rounds loaded from a workbook
func (m *Metrics) RoundsImported(league string, n int) {
	if m == nil {
		return
	}
	m.workbookRounds.WithLabelValues(league).Add(float64(n))
}

// HTTPRequest records a served request
func (m *Metrics) HTTPRequest(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(took.Seconds())
}
