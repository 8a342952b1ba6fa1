package in

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics owns a private registry so handlers can be built more than once.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	dilation    prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gazesim_submissions_total",
			Help: "Attention summaries received, by outcome.",
		}, []string{"outcome"}),
		dilation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gazesim_pupil_dilation",
			Help:    "Pupil dilation of accepted submissions.",
			Buckets: prometheus.LinearBuckets(3.5, 0.1, 10),
		}),
	}
	m.registry.MustRegister(
		m.submissions,
		m.dilation,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) observe(outcome string, dilation float64) {
	m.submissions.WithLabelValues(outcome).Inc()
	if outcome == outcomeAccepted {
		m.dilation.Observe(dilation)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
