package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// DocumentMetrics observes per-document processing.
type DocumentMetrics struct {
	service string

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	fieldsMissing   *prometheus.CounterVec
}

func NewDocumentMetrics(service string, registerer prometheus.Registerer) *DocumentMetrics {
	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "process_total",
			Help:      "Total processed documents by family and status.",
		},
		[]string{"service", "family", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "process_duration_seconds",
			Help:      "Document processing duration in seconds by family.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"service", "family"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "documents",
			Name:        "process_in_flight",
			Help:        "Number of documents being processed.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	fieldsMissing := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "fields_missing_total",
			Help:      "Processed documents where a field could not be extracted.",
		},
		[]string{"service", "family", "field"},
	)

	registerer.MustRegister(processTotal, processDuration, processInFlight, fieldsMissing)

	return &DocumentMetrics{
		service:         service,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		fieldsMissing:   fieldsMissing,
	}
}

func (m *DocumentMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *DocumentMetrics) FinishDocument(outcome domain.DocumentOutcome, elapsed time.Duration) {
	m.processInFlight.Dec()

	status := "recorded"
	switch {
	case outcome.Failed():
		status = "failed"
	case !outcome.Recorded:
		status = "skipped"
	}
	m.processTotal.WithLabelValues(m.service, outcome.Family, status).Inc()
	m.processDuration.WithLabelValues(m.service, outcome.Family).Observe(elapsed.Seconds())

	if outcome.Failed() {
		return
	}
	missing := map[string]bool{
		"author":     outcome.Recorded && outcome.Fields.Author == "",
		"discipline": outcome.Recorded && outcome.Fields.Discipline == "",
		"hours":      outcome.Fields.Hours <= 0,
	}
	for field, isMissing := range missing {
		if isMissing {
			m.fieldsMissing.WithLabelValues(m.service, outcome.Family, field).Inc()
		}
	}
}
