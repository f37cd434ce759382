package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the snap engine's Prometheus metrics
type Registry struct {
	// Decision metrics
	Decisions *prometheus.CounterVec

	// Snap lifecycle metrics
	SnapsStarted   prometheus.Counter
	SnapsCompleted prometheus.Counter
	SectionLocks   *prometheus.CounterVec
	SnapDistance   prometheus.Histogram

	// Sampler metrics
	Velocity      prometheus.Gauge
	ActiveChanges prometheus.Counter

	// Coordination metrics
	Suppressions *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates the metrics and registers them on a private registry
func NewRegistry() *Registry {
	r := &Registry{
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storysnap_decisions_total",
				Help: "Snap decision cycles by outcome",
			},
			[]string{"outcome"},
		),

		SnapsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storysnap_snaps_started_total",
				Help: "Snap animations started, automatic and explicit",
			},
		),

		SnapsCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storysnap_snaps_completed_total",
				Help: "Snap animations that reached their target",
			},
		),

		SectionLocks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storysnap_section_locks_total",
				Help: "Section-locked notifications by section id",
			},
			[]string{"section"},
		),

		SnapDistance: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "storysnap_snap_distance_px",
				Help:    "Distance covered by accepted snaps in pixels",
				Buckets: []float64{5, 25, 50, 100, 200, 400, 800, 1600},
			},
		),

		Velocity: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "storysnap_scroll_velocity_px_per_ms",
				Help: "Most recent sampled scroll velocity",
			},
		),

		ActiveChanges: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "storysnap_active_section_changes_total",
				Help: "Active section changes reported to listeners",
			},
		),

		Suppressions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storysnap_suppressions_total",
				Help: "Programmatic scroll announcements from self-managing sections",
			},
			[]string{"source"},
		),

		registry: prometheus.NewRegistry(),
	}

	r.registry.MustRegister(
		r.Decisions,
		r.SnapsStarted,
		r.SnapsCompleted,
		r.SectionLocks,
		r.SnapDistance,
		r.Velocity,
		r.ActiveChanges,
		r.Suppressions,
	)
	return r
}

// Gatherer exposes the private registry for promhttp and reports
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
