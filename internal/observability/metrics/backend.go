package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BackendMetrics instruments outbound calls to the doc-intelligence API and
// the liveness indicator derived from them.
type BackendMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	online          prometheus.Gauge
	pollTotal       *prometheus.CounterVec
}

func NewBackendMetrics(service string) *BackendMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ultradoc",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total backend API requests by endpoint and outcome.",
		},
		[]string{"service", "endpoint", "outcome"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ultradoc",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend API request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	online := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ultradoc",
			Subsystem: "status",
			Name:      "online",
			Help:      "Whether the last status check reached the backend (1) or not (0).",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pollTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ultradoc",
			Subsystem: "status",
			Name:      "polls_total",
			Help:      "Total status checks by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(requestTotal, requestDuration, online, pollTotal)

	return &BackendMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		online:          online,
		pollTotal:       pollTotal,
	}
}

func (m *BackendMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *BackendMetrics) ObserveRequest(service, endpoint string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.requestTotal.WithLabelValues(service, endpoint, outcome).Inc()
	m.requestDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

func (m *BackendMetrics) ObservePoll(service string, online bool) {
	outcome := "online"
	value := 1.0
	if !online {
		outcome = "offline"
		value = 0
	}
	m.online.Set(value)
	m.pollTotal.WithLabelValues(service, outcome).Inc()
}
