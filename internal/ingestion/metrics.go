package ingestion

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusEnqueued  = "enqueued"
	statusPersisted = "persisted"
	statusFailed    = "failed"
	statusDropped   = "dropped"
)

var (
	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playstats_ingestion_events_total",
			Help: "Play events seen by the pipeline, by outcome",
		},
		[]string{"status"},
	)
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "playstats_ingestion_queue_depth",
			Help: "Items waiting for the writer",
		},
	)
	persistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playstats_ingestion_persist_duration_seconds",
			Help:    "Time to persist one play event",
			Buckets: prometheus.DefBuckets,
		},
	)

	registerOnce sync.Once
)

// RegisterMetrics adds the pipeline collectors to the default registry. Safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(events, queueDepth, persistDuration)
	})
}
