package querysync

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/querystate/pkg/clock"
)

// DefaultWindow is how long the provider waits after the last deferred
// write before committing the buffer.
const DefaultWindow = 600 * time.Millisecond

// Option configures a Provider.
type Option func(*providerConfig)

type providerConfig struct {
	window  time.Duration
	logger  *slog.Logger
	clock   clock.Clock
	metrics *Metrics
	tracer  trace.Tracer
}

func defaultProviderConfig() providerConfig {
	return providerConfig{
		window: DefaultWindow,
		clock:  clock.Real(),
	}
}

// WithWindow sets the debounce window for deferred writes.
// Non-positive durations are ignored.
func WithWindow(d time.Duration) Option {
	return func(c *providerConfig) {
		if d > 0 {
			c.window = d
		}
	}
}

// WithLogger sets the structured logger. If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *providerConfig) {
		c.logger = logger
	}
}

// WithClock replaces the clock driving the flush timer.
func WithClock(c clock.Clock) Option {
	return func(cfg *providerConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithMetrics records provider activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *providerConfig) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for Update, Flush and Reset spans.
// If unset, the global OpenTelemetry tracer provider is used.
func WithTracer(t trace.Tracer) Option {
	return func(c *providerConfig) {
		c.tracer = t
	}
}

// UpdateOption configures a single Update call.
type UpdateOption func(*updateConfig)

type updateConfig struct {
	immediate bool
}

// Immediate writes every field of the update straight to the URL, including
// fields of a deferred kind.
func Immediate() UpdateOption {
	return func(c *updateConfig) {
		c.immediate = true
	}
}
