// Package metrics exposes Prometheus instrumentation for Caddie.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// check whether instrumentation is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "caddie"

// Metrics bundles the collectors recorded by the repository, the persistence
// adapter and the RPC interceptor.
type Metrics struct {
	ClubsCreated  prometheus.Counter
	ShotsRecorded *prometheus.CounterVec   // source
	ShotsDeleted  prometheus.Counter
	BlobWrites    *prometheus.CounterVec   // blob, result
	LoadFallbacks *prometheus.CounterVec   // blob, reason
	RPCDuration   *prometheus.HistogramVec // procedure, code
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClubsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clubs_created_total",
			Help:      "Number of clubs added to the bag.",
		}),
		ShotsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_recorded_total",
			Help:      "Number of shots recorded, by distance source.",
		}, []string{"source"}),
		ShotsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shots_deleted_total",
			Help:      "Number of shots deleted.",
		}),
		BlobWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blob_writes_total",
			Help:      "Full-collection writes to the key-value store.",
		}, []string{"blob", "result"}),
		LoadFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_fallbacks_total",
			Help:      "Loads that fell back to an empty collection.",
		}, []string{"blob", "reason"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of RPC calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(
		m.ClubsCreated,
		m.ShotsRecorded,
		m.ShotsDeleted,
		m.BlobWrites,
		m.LoadFallbacks,
		m.RPCDuration,
	)
	return m
}

func (m *Metrics) ClubCreated() {
	if m == nil {
		return
	}
	m.ClubsCreated.Inc()
}

func (m *Metrics) ShotRecorded(source string) {
	if m == nil {
		return
	}
	m.ShotsRecorded.WithLabelValues(source).Inc()
}

func (m *Metrics) ShotDeleted() {
	if m == nil {
		return
	}
	m.ShotsDeleted.Inc()
}

// BlobWritten records a write of blob; err decides the result label.
func (m *Metrics) BlobWritten(blob string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.BlobWrites.WithLabelValues(blob, result).Inc()
}

// LoadFellBack records a load of blob that returned an empty collection.
func (m *Metrics) LoadFellBack(blob, reason string) {
	if m == nil {
		return
	}
	m.LoadFallbacks.WithLabelValues(blob, reason).Inc()
}

// ObserveRPC records the duration of one RPC in seconds.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(seconds)
}
