package navigator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures navigator metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "approuter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "navigator").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	Buckets []float64
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "approuter",
		Subsystem: "navigator",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}
}

// Metrics holds the Prometheus collectors shared by every navigator of a
// process. Create it once per registry and pass it with WithMetrics.
//
// Metrics collected:
//   - approuter_navigator_navigations_total: navigations by outcome
//   - approuter_navigator_navigation_duration_seconds: time from start to outcome
//   - approuter_navigator_navigations_in_flight: navigations currently running
//   - approuter_navigator_load_failures_total: failed loads by unit (page, layout)
//   - approuter_navigator_active: navigators initialized and not yet disposed
type Metrics struct {
	navigations  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	inFlight     prometheus.Gauge
	loadFailures *prometheus.CounterVec
	active       prometheus.Gauge
}

// NewMetrics registers the navigator collectors with reg.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(reg)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_in_flight",
			Help:        "Number of navigations currently running",
			ConstLabels: config.ConstLabels,
		}),

		loadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "load_failures_total",
			Help:        "Total number of page and layout load failures",
			ConstLabels: config.ConstLabels,
		}, []string{"unit"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active",
			Help:        "Number of navigators not yet disposed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) finished(outcome Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.navigations.WithLabelValues(outcome.String()).Inc()
	m.duration.WithLabelValues(outcome.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) loadFailed(unit string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(unit).Inc()
}

func (m *Metrics) navigatorCreated() {
	if m == nil {
		return
	}
	m.active.Inc()
}

func (m *Metrics) navigatorDisposed() {
	if m == nil {
		return
	}
	m.active.Dec()
}
