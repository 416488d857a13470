package querysync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures provider metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "querystate").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures provider metrics.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors for one or more providers.
// A nil *Metrics records nothing.
type Metrics struct {
	navigations  prometheus.Counter
	staged       prometheus.Counter
	flushes      *prometheus.CounterVec
	flushBatch   prometheus.Histogram
	resets       *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the provider metrics.
//
// Metrics collected:
//   - querystate_navigations_total: shallow URL replacements
//   - querystate_deferred_staged_total: deferred writes buffered
//   - querystate_flushes_total: buffer commits by trigger (timer, manual)
//   - querystate_flush_batch_size: fields per buffer commit
//   - querystate_resets_total: resets by whether the URL changed
//   - querystate_decode_errors_total: failed reads by error code
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "querystate",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of shallow URL replacements",
			ConstLabels: config.ConstLabels,
		}),

		staged: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_staged_total",
			Help:        "Total number of deferred field writes buffered",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of deferred buffer commits",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		flushBatch: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_batch_size",
			Help:        "Number of fields committed per deferred flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 32},
		}),

		resets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resets_total",
			Help:        "Total number of query state resets",
			ConstLabels: config.ConstLabels,
		}, []string{"navigated"}),

		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "decode_errors_total",
			Help:        "Total number of failed query state reads by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) recordNavigation() {
	if m != nil {
		m.navigations.Inc()
	}
}

func (m *Metrics) recordStaged(n int) {
	if m != nil {
		m.staged.Add(float64(n))
	}
}

func (m *Metrics) recordFlush(trigger string, size int) {
	if m != nil {
		m.flushes.WithLabelValues(trigger).Inc()
		m.flushBatch.Observe(float64(size))
	}
}

func (m *Metrics) recordReset(navigated bool) {
	if m != nil {
		label := "false"
		if navigated {
			label = "true"
		}
		m.resets.WithLabelValues(label).Inc()
	}
}

func (m *Metrics) recordDecodeError(code string) {
	if m != nil {
		m.decodeErrors.WithLabelValues(code).Inc()
	}
}
