// Package metrics provides observability for spawnpool using Prometheus
// metrics. It exposes pre-defined collectors for pool behavior: spawn and
// recycle throughput, pool occupancy, misuse events, and warm-up latency.
//
// # Basic Usage
//
//	// Record a spawn served from the free list
//	metrics.SpawnsTotal.WithLabelValues("bullet", metrics.SourcePooled).Inc()
//
//	// Track warm-up latency
//	timer := metrics.NewTimer("warmup")
//	registry.EnsureStartupPoolsCreated()
//	metrics.WarmupDuration.Observe(timer.Stop().Seconds())
//
// Counter: monotonically increasing values (e.g., total spawns)
// Gauge: values that can go up or down (e.g., pooled instances)
// Histogram: distribution of values (e.g., warm-up duration)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the source dimension of SpawnsTotal.
const (
	// SourcePooled marks a spawn served by reusing a free-list instance
	SourcePooled = "pooled"
	// SourceFresh marks a spawn that had to instantiate a new copy
	SourceFresh = "fresh"
)

var (
	// SpawnsTotal tracks the total number of spawn operations.
	// Labels: prefab (template name), source (pooled/fresh)
	//
	// Example:
	//	metrics.SpawnsTotal.WithLabelValues("bullet", metrics.SourcePooled).Inc()
	SpawnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_spawns_total",
			Help: "Total number of spawn operations",
		},
		[]string{"prefab", "source"},
	)

	// RecyclesTotal tracks the total number of successful recycle operations.
	// Labels: prefab (template name)
	RecyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spawnpool_recycles_total",
			Help: "Total number of recycle operations",
		},
		[]string{"prefab"},
	)

	// MisusesTotal tracks recycle calls for instances the registry never
	// spawned. Each such instance is destroyed rather than pooled.
	MisusesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spawnpool_misuses_total",
			Help: "Total number of recycle calls for untracked instances",
		},
	)

	// PooledInstances tracks the current free-list size per prefab.
	// Labels: prefab (template name)
	PooledInstances = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spawnpool_pooled_instances",
			Help: "Current number of inactive instances in the free list",
		},
		[]string{"prefab"},
	)

	// SpawnedInstances tracks the current live-set size per prefab.
	// Labels: prefab (template name)
	SpawnedInstances = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spawnpool_spawned_instances",
			Help: "Current number of active spawned instances",
		},
		[]string{"prefab"},
	)

	// StaleHandlesTotal tracks destroyed handles skipped while popping
	// from a free list.
	StaleHandlesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spawnpool_stale_handles_total",
			Help: "Total number of destroyed handles skipped in free lists",
		},
	)

	// WarmupDuration tracks the distribution of startup pool warm-up
	// durations in seconds.
	WarmupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "spawnpool_warmup_duration_seconds",
			Help: "Startup pool warm-up duration in seconds",
			Buckets: []float64{
				1e-6, // 1μs
				1e-5, // 10μs
				1e-4, // 100μs
				1e-3, // 1ms
				1e-2, // 10ms
				1e-1, // 100ms
				1,    // 1s
			},
		},
	)
)

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
//
// Example:
//
//	timer := metrics.NewTimer("warmup")
//	registry.EnsureStartupPoolsCreated()
//	duration := timer.Stop()
//	logger.Info("pools warmed", zap.Duration("duration", duration))
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop stops the timer and returns the elapsed duration since creation.
// The timer can be stopped multiple times, each returning the total
// elapsed time since creation.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
