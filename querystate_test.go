package querystate_test

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/vango-dev/querystate"
	"github.com/vango-dev/querystate/pkg/clock"
)

// manualClock holds the last scheduled callback until the test runs it.
type manualClock struct {
	window time.Duration
	fire   func()
}

func (c *manualClock) Now() time.Time { return time.Time{} }

func (c *manualClock) AfterFunc(d time.Duration, f func()) *clock.Timer {
	c.window = d
	c.fire = f
	return clock.NewTimer(func() bool {
		stopped := c.fire != nil
		c.fire = nil
		return stopped
	})
}

func TestFacade(t *testing.T) {
	m := querystate.MustMapping(
		querystate.Field{Name: "q", Kind: querystate.DeferredString},
		querystate.Field{Name: "page", Kind: querystate.Number},
	)

	loc, err := querystate.NewMemoryLocation("https://shop.example/list?page=2")
	if err != nil {
		t.Fatal(err)
	}
	p := querystate.NewProvider(loc)
	defer p.Close()
	b := p.Bind(m)

	b.Update(querystate.Update{"q": querystate.Str("boots"), "page": querystate.Null()})
	if got := loc.URL().RawQuery; got != "" {
		t.Errorf("after immediate write query = %q, want empty", got)
	}

	values, err := b.Values()
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := values["q"].Str(); s != "boots" {
		t.Errorf("pending q = %v, want boots", values["q"])
	}

	p.Flush()
	if got := loc.URL().RawQuery; got != "q=boots" {
		t.Errorf("after flush query = %q, want q=boots", got)
	}
}

func TestFacadeDecodeRequired(t *testing.T) {
	m := querystate.MustMapping(querystate.Field{Name: "id", Kind: querystate.RequiredString})
	_, err := querystate.Decode(url.Values{}, m)
	if !errors.Is(err, querystate.ErrMissingRequiredField) {
		t.Fatalf("err = %v, want missing required field", err)
	}
}

func TestFacadeCustomClock(t *testing.T) {
	m := querystate.MustMapping(querystate.Field{Name: "q", Kind: querystate.DeferredString})
	loc, err := querystate.NewMemoryLocation("https://shop.example/list")
	if err != nil {
		t.Fatal(err)
	}
	c := &manualClock{}
	p := querystate.NewProvider(loc, querystate.WithClock(c), querystate.WithWindow(time.Second))
	defer p.Close()

	p.Bind(m).Update(querystate.Update{"q": querystate.Str("boots")})
	if c.fire == nil {
		t.Fatal("expected flush to be scheduled on the custom clock")
	}
	if c.window != time.Second {
		t.Errorf("window = %v, want 1s", c.window)
	}

	fire := c.fire
	fire()
	if got := loc.URL().RawQuery; got != "q=boots" {
		t.Errorf("after flush query = %q, want q=boots", got)
	}
}
