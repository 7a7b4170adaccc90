package desk

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the desk subsystem.
type Metrics struct {
	ImportsTotal    *prometheus.CounterVec
	ImportRowsTotal *prometheus.CounterVec
	ImportDuration  prometheus.Histogram
	MessagesTotal   *prometheus.CounterVec
	ResponsesTotal  prometheus.Counter
}

// NewMetrics registers and returns desk metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ImportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_imports_total",
			Help: "Total CSV import runs by result.",
		}, []string{"result"}),
		ImportRowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_import_rows_total",
			Help: "Total CSV data rows processed by outcome.",
		}, []string{"outcome"}),
		ImportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "frontdesk_import_duration_seconds",
			Help:    "Duration of CSV import runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s .. ~51s
		}),
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frontdesk_messages_total",
			Help: "Total messages created by urgency tier.",
		}, []string{"urgency"}),
		ResponsesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frontdesk_responses_total",
			Help: "Total agent responses recorded.",
		}),
	}

	reg.MustRegister(
		m.ImportsTotal,
		m.ImportRowsTotal,
		m.ImportDuration,
		m.MessagesTotal,
		m.ResponsesTotal,
	)

	return m
}
