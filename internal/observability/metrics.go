package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors registered on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	entriesRecorded *prometheus.CounterVec
	acceptances     prometheus.Counter
}

func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "roadto100k",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by route and status.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		entriesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "roadto100k",
			Name:        "profit_entries_total",
			Help:        "Profit entry submissions by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		acceptances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "roadto100k",
			Name:        "challenge_acceptances_total",
			Help:        "Challenge acceptances recorded.",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.entriesRecorded,
		m.acceptances,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) EntryRecorded(outcome string) {
	if m == nil {
		return
	}
	m.entriesRecorded.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ChallengeAccepted() {
	if m == nil {
		return
	}
	m.acceptances.Inc()
}
