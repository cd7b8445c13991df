package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "facilitator_active_sessions",
		Help: "Number of live meeting sessions",
	})

	fragmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilitator_fragments_total",
		Help: "Total transcript fragments processed",
	}, []string{"source"}) // source: "ws", "http", "audio"

	extractionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "facilitator_extraction_seconds",
		Help:    "End-to-end reconciliation latency per fragment",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0, 30.0},
	})

	itemsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilitator_items_extracted_total",
		Help: "Items accepted into meeting state",
	}, []string{"extractor", "type"}) // extractor: "primary", "pattern"

	itemsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilitator_items_rejected_total",
		Help: "Items dropped before reaching meeting state",
	}, []string{"reason"}) // reason: "validation", "duplicate"

	primaryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilitator_primary_failures_total",
		Help: "Primary extractor failures absorbed by the fallback path",
	}, []string{"code"})

	transcriptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facilitator_transcriptions_total",
		Help: "Audio transcription requests",
	}, []string{"status"})
)

// SessionOpened records a new live session
func SessionOpened() {
	activeSessions.Inc()
}

// SessionClosed records a finished live session
func SessionClosed() {
	activeSessions.Dec()
}

// RecordFragment records one processed transcript fragment
func RecordFragment(source string) {
	fragmentsTotal.WithLabelValues(source).Inc()
}

// ObserveExtraction records reconciliation latency for one fragment
func ObserveExtraction(start time.Time) {
	extractionLatency.Observe(time.Since(start).Seconds())
}

// RecordItem records an item accepted into state
func RecordItem(extractor, itemType string) {
	itemsExtracted.WithLabelValues(extractor, itemType).Inc()
}

// RecordRejected records an item dropped before reaching state
func RecordRejected(reason string) {
	itemsRejected.WithLabelValues(reason).Inc()
}

// RecordPrimaryFailure records an absorbed primary-extractor failure
func RecordPrimaryFailure(code string) {
	primaryFailures.WithLabelValues(code).Inc()
}

// RecordTranscription records an audio transcription outcome
func RecordTranscription(ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	transcriptionRequests.WithLabelValues(status).Inc()
}
