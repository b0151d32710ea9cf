// Package metrics holds the prometheus instruments of the indexer.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ionic_indexer"

// Result labels
const (
	ResultOK      = "ok"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

type Metrics struct {
	eventsTotal      *prometheus.CounterVec
	eventDuration    *prometheus.HistogramVec
	refreshesTotal   *prometheus.CounterVec
	contentJobsTotal *prometheus.CounterVec
	rejectedFields   *prometheus.CounterVec
	publishedTotal   *prometheus.CounterVec
	lastAppliedBlock prometheus.Gauge
	lastEmittedBlock prometheus.Gauge
}

// New creates the instruments and registers them with registry
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Contract events handled, by contract, event and result",
		}, []string{"contract", "event", "result"}),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Time spent applying one contract event",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),
		refreshesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_refreshes_total",
			Help:      "Aggregate refreshes read from the contracts, by entity kind",
		}, []string{"entity"}),
		contentJobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_jobs_total",
			Help:      "Content resolution jobs, by shape and result",
		}, []string{"shape", "result"}),
		rejectedFields: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_rejected_fields_total",
			Help:      "Metadata fields rejected during extraction, by shape and field",
		}, []string{"shape", "field"}),
		publishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_events_total",
			Help:      "Decoded contract events published to the stream, by contract",
		}, []string{"contract"}),
		lastAppliedBlock: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_applied_block",
			Help:      "Block number of the last event applied to the store",
		}),
		lastEmittedBlock: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_emitted_block",
			Help:      "Block number of the last log published by the emitter",
		}),
	}
}

// ObserveEvent records the outcome of one handled event
func (m *Metrics) ObserveEvent(contract, event, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(contract, event, result).Inc()
	m.eventDuration.WithLabelValues(event).Observe(took.Seconds())
}

// SetLastAppliedBlock records the block of the last committed event
func (m *Metrics) SetLastAppliedBlock(block uint64) {
	if m == nil {
		return
	}
	m.lastAppliedBlock.Set(float64(block))
}

// SetLastEmittedBlock records the block of the last published log
func (m *Metrics) SetLastEmittedBlock(block uint64) {
	if m == nil {
		return
	}
	m.lastEmittedBlock.Set(float64(block))
}

// IncRefresh counts an aggregate refresh of entity
func (m *Metrics) IncRefresh(entity string) {
	if m == nil {
		return
	}
	m.refreshesTotal.WithLabelValues(entity).Inc()
}

// IncContentJob counts a finished content job
func (m *Metrics) IncContentJob(shape, result string) {
	if m == nil {
		return
	}
	m.contentJobsTotal.WithLabelValues(shape, result).Inc()
}

// IncRejectedField counts a metadata field dropped by extraction
func (m *Metrics) IncRejectedField(shape, field string) {
	if m == nil {
		return
	}
	m.rejectedFields.WithLabelValues(shape, field).Inc()
}

// IncPublished counts a published event
func (m *Metrics) IncPublished(contract string) {
	if m == nil {
		return
	}
	m.publishedTotal.WithLabelValues(contract).Inc()
}
