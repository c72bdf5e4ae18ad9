// Package metrics exposes Prometheus instruments for the sync server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/repertoire-sync/models"
)

const namespace = "repertoire_sync"

// Outcome labels of [Metrics.SyncRequests].
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics holds every instrument on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	syncRequests     *prometheus.CounterVec
	appliedChanges   *prometheus.CounterVec
	ignoredItems     *prometheus.CounterVec
	writeRetries     *prometheus.CounterVec
	prunedTombstones prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

// New creates the instruments and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		syncRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_requests_total",
			Help:      "Sync operations by channel, direction and outcome.",
		}, []string{"channel", "direction", "outcome"}),
		appliedChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applied_changes_total",
			Help:      "Entity changes applied by merges.",
		}, []string{"table", "op"}),
		ignoredItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ignored_items_total",
			Help:      "Incoming items discarded by last-write-wins or tombstone rules.",
		}, []string{"reason"}),
		writeRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_retries_total",
			Help:      "Store writes repeated after a version conflict or transient failure.",
		}, []string{"channel"}),
		prunedTombstones: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_tombstones_total",
			Help:      "Tombstones removed after the retention period.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.syncRequests,
		m.appliedChanges,
		m.ignoredItems,
		m.writeRetries,
		m.prunedTombstones,
		m.requestDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry, DisableCompression: true})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SyncRequest(channel models.Channel, direction, outcome string) {
	if m == nil {
		return
	}
	m.syncRequests.WithLabelValues(string(channel), direction, outcome).Inc()
}

// Changes counts every entry of a change log.
func (m *Metrics) Changes(changes []models.Change) {
	if m == nil {
		return
	}
	for _, c := range changes {
		m.appliedChanges.WithLabelValues(string(c.Table), c.Op.String()).Inc()
	}
}

// Ignored adds n to the ignored-items counter of reason.
func (m *Metrics) Ignored(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ignoredItems.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) WriteRetry(channel models.Channel) {
	if m == nil {
		return
	}
	m.writeRetries.WithLabelValues(string(channel)).Inc()
}

func (m *Metrics) PrunedTombstones(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.prunedTombstones.Add(float64(n))
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
