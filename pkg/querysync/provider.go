package querysync

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/querystate/pkg/clock"
	"github.com/vango-dev/querystate/pkg/querycodec"
)

const tracerName = "github.com/vango-dev/querystate/pkg/querysync"

// pending is one buffered deferred write. A null value is a clear marker.
type pending struct {
	kind  querycodec.Kind
	value querycodec.Value
}

// write is one field write applied to the URL.
type write struct {
	name  string
	kind  querycodec.Kind
	value querycodec.Value
}

// Provider scopes one deferred-update buffer and its flush timer. All
// bindings created from the same provider share the buffer.
type Provider struct {
	loc     Location
	window  time.Duration
	clock   clock.Clock
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// mu guards the buffer and the timer state. When both locks are needed,
	// navMu is taken first.
	mu     sync.Mutex
	buffer map[string]pending
	timer  *clock.Timer
	gen    uint64
	closed bool

	// navMu serializes read-modify-replace cycles on loc. A flush holds it
	// from taking the buffer until its navigation is done.
	navMu sync.Mutex
}

// NewProvider creates a provider bound to loc.
func NewProvider(loc Location, opts ...Option) *Provider {
	cfg := defaultProviderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &Provider{
		loc:     loc,
		window:  cfg.window,
		clock:   cfg.clock,
		logger:  logger.With("component", "querysync"),
		metrics: cfg.metrics,
		tracer:  tracer,
		buffer:  make(map[string]pending),
	}
}

// Bind returns a Binding that reads and writes the fields declared in m.
func (p *Provider) Bind(m *querycodec.Mapping) *Binding {
	return &Binding{p: p, mapping: m}
}

// Location returns the location the provider writes to.
func (p *Provider) Location() Location {
	return p.loc
}

// Window returns the debounce window.
func (p *Provider) Window() time.Duration {
	return p.window
}

// Pending returns a snapshot of the deferred buffer. Clear markers appear
// as null values.
func (p *Provider) Pending() map[string]querycodec.Value {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]querycodec.Value, len(p.buffer))
	for name, e := range p.buffer {
		out[name] = e.value
	}
	return out
}

// Flush commits the deferred buffer now, cancelling the pending timer.
func (p *Provider) Flush() {
	p.navMu.Lock()
	defer p.navMu.Unlock()

	p.mu.Lock()
	entries := p.takeLocked()
	p.mu.Unlock()

	p.commitLocked(entries, "manual")
}

// Reset removes every query parameter from the URL and empties the deferred
// buffer.
func (p *Provider) Reset() {
	_, span := p.tracer.Start(context.Background(), "querysync.Reset")
	defer span.End()

	p.navMu.Lock()
	p.mu.Lock()
	dropped := len(p.takeLocked())
	p.mu.Unlock()

	current := p.loc.URL()
	navigated := false
	if current.RawQuery != "" || current.ForceQuery {
		next := cloneURL(current)
		next.RawQuery = ""
		next.ForceQuery = false
		p.loc.Replace(next)
		navigated = true
	}
	p.navMu.Unlock()

	span.SetAttributes(
		attribute.Int("querystate.dropped", dropped),
		attribute.Bool("querystate.navigated", navigated),
	)
	p.metrics.recordReset(navigated)
	p.logger.Info("query state reset", "dropped_pending", dropped, "navigated", navigated)
}

// Close cancels any pending flush and discards the deferred buffer. Call
// Flush first to keep buffered input.
func (p *Provider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	dropped := len(p.takeLocked())
	p.mu.Unlock()

	if dropped > 0 {
		p.logger.Debug("provider closed with pending writes", "dropped_pending", dropped)
	}
}

// stage merges deferred writes into the buffer and restarts the window.
func (p *Provider) stage(entries map[string]pending) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	for name, e := range entries {
		p.buffer[name] = e
	}
	p.metrics.recordStaged(len(entries))
	p.armLocked()
}

// armLocked replaces any pending timer with a fresh one. A superseded
// callback sees a stale generation and does nothing. Must be called with
// p.mu held.
func (p *Provider) armLocked() {
	if p.timer != nil {
		p.timer.Stop()
	}
	p.gen++
	gen := p.gen
	p.timer = p.clock.AfterFunc(p.window, func() { p.fire(gen) })
	p.logger.Debug("flush armed", "window", p.window, "pending", len(p.buffer))
}

// fire is the timer callback. It reads the buffer as it is now, not as it
// was when the timer was armed.
func (p *Provider) fire(gen uint64) {
	p.navMu.Lock()
	defer p.navMu.Unlock()

	p.mu.Lock()
	if gen != p.gen || p.closed {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	entries := p.buffer
	p.buffer = make(map[string]pending)
	p.mu.Unlock()

	p.commitLocked(entries, "timer")
}

// takeLocked empties the buffer and cancels the timer, returning what was
// buffered. Must be called with p.mu held.
func (p *Provider) takeLocked() map[string]pending {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	entries := p.buffer
	p.buffer = make(map[string]pending)
	return entries
}

// writeImmediate drops any buffered values for the written fields and
// applies the writes, both under navMu so a flush already in progress
// finishes first and a later one cannot see the dropped values.
func (p *Provider) writeImmediate(writes []write) bool {
	p.navMu.Lock()
	defer p.navMu.Unlock()

	names := make([]string, len(writes))
	for i, w := range writes {
		names[i] = w.name
	}
	p.dropPending(names)
	return p.applyLocked(writes)
}

// snapshot returns the decoded query and the buffer as of one instant.
func (p *Provider) snapshot() (url.Values, map[string]querycodec.Value) {
	p.navMu.Lock()
	defer p.navMu.Unlock()
	return p.loc.URL().Query(), p.Pending()
}

// dropPending forgets buffered values for names that are about to be
// written immediately.
func (p *Provider) dropPending(names []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, name := range names {
		delete(p.buffer, name)
	}
	if len(p.buffer) == 0 && p.timer != nil {
		p.timer.Stop()
		p.timer = nil
		p.gen++
	}
}

// commitLocked writes taken buffer entries to the URL. Must be called with
// p.navMu held.
func (p *Provider) commitLocked(entries map[string]pending, trigger string) {
	if len(entries) == 0 {
		return
	}

	_, span := p.tracer.Start(context.Background(), "querysync.Flush",
		trace.WithAttributes(
			attribute.String("querystate.trigger", trigger),
			attribute.Int("querystate.batch_size", len(entries)),
		))
	defer span.End()

	writes := make([]write, 0, len(entries))
	for name, e := range entries {
		writes = append(writes, write{name: name, kind: e.kind, value: e.value})
	}
	navigated := p.applyLocked(writes)

	span.SetAttributes(attribute.Bool("querystate.navigated", navigated))
	p.metrics.recordFlush(trigger, len(entries))
	p.logger.Info("deferred writes flushed", "trigger", trigger, "fields", len(entries), "navigated", navigated)
}

// applyLocked encodes writes onto a working copy of the current URL and
// replaces the location once if the query changed. Must be called with
// p.navMu held.
func (p *Provider) applyLocked(writes []write) bool {
	current := p.loc.URL()
	before := current.Query()
	working := current.Query()
	for _, w := range writes {
		querycodec.Encode(w.kind, w.value).Apply(working, w.name)
	}
	if queryEqual(before, working) {
		return false
	}

	next := cloneURL(current)
	next.RawQuery = working.Encode()
	next.ForceQuery = false
	p.loc.Replace(next)
	p.metrics.recordNavigation()
	return true
}

func queryEqual(a, b url.Values) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !slices.Equal(va, vb) {
			return false
		}
	}
	return true
}
