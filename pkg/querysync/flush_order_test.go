package querysync

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/querystate/pkg/querycodec"
)

// gateTracer blocks the first span named span until release is closed.
type gateTracer struct {
	noop.Tracer

	span    string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateTracer(span string) *gateTracer {
	return &gateTracer{
		span:    span,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *gateTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if name == g.span {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.Tracer.Start(ctx, name, opts...)
}

// stallTimerFlush fires the flush timer on another goroutine and returns once
// the flush has taken the buffer and is blocked in the gate.
func stallTimerFlush(f *fixture, gate *gateTracer) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.clock.Advance(DefaultWindow)
	}()
	<-gate.entered
	return done
}

// raceWithFlush runs op while the flush is stalled, then lets the flush go.
func raceWithFlush(t *testing.T, gate *gateTracer, flushDone <-chan struct{}, op func()) {
	t.Helper()
	opDone := make(chan struct{})
	go func() {
		defer close(opDone)
		op()
	}()
	time.Sleep(20 * time.Millisecond)
	close(gate.release)

	for _, ch := range []<-chan struct{}{flushDone, opDone} {
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			t.Fatal("flush and concurrent call did not finish")
		}
	}
}

func TestResetDuringFlushLeavesNoQuery(t *testing.T) {
	gate := newGateTracer("querysync.Flush")
	f := newFixture(t, "https://shop.test/list?page=2", WithTracer(gate))

	f.b.Update(Update{"q": querycodec.Str("stale")})
	flushDone := stallTimerFlush(f, gate)

	raceWithFlush(t, gate, flushDone, f.b.Reset)

	if got := f.query(t); got != "" {
		t.Errorf("query after reset = %q, want empty", got)
	}
	if n := len(f.p.Pending()); n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
}

func TestImmediateWriteDuringFlushWins(t *testing.T) {
	gate := newGateTracer("querysync.Flush")
	f := newFixture(t, "https://shop.test/list", WithTracer(gate))

	f.b.Update(Update{"q": querycodec.Str("stale")})
	flushDone := stallTimerFlush(f, gate)

	raceWithFlush(t, gate, flushDone, func() {
		f.b.Update(Update{"q": querycodec.Str("fresh")}, Immediate())
	})

	if got := f.query(t); got != "q=fresh" {
		t.Errorf("query = %q, want q=fresh", got)
	}
}

func TestResetDuringManualFlushLeavesNoQuery(t *testing.T) {
	gate := newGateTracer("querysync.Flush")
	f := newFixture(t, "https://shop.test/list", WithTracer(gate))

	f.b.Update(Update{"q": querycodec.Str("stale")})
	flushDone := make(chan struct{})
	go func() {
		defer close(flushDone)
		f.p.Flush()
	}()
	<-gate.entered

	raceWithFlush(t, gate, flushDone, f.p.Reset)

	if got := f.query(t); got != "" {
		t.Errorf("query after reset = %q, want empty", got)
	}
}

func TestValuesDuringFlushSeesBufferedInput(t *testing.T) {
	gate := newGateTracer("querysync.Flush")
	f := newFixture(t, "https://shop.test/list", WithTracer(gate))

	f.b.Update(Update{"q": querycodec.Str("boots")})
	flushDone := stallTimerFlush(f, gate)

	var (
		values querycodec.Values
		err    error
	)
	raceWithFlush(t, gate, flushDone, func() {
		values, err = f.b.Values()
	})

	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}
	if s, _ := values["q"].Str(); s != "boots" {
		t.Errorf("q = %v, want boots", values["q"])
	}
}
