package navigator

import (
	"log/slog"
	"net/url"
	"sync"
)

// Sink delivers a message to the client.
type Sink func(Message) error

// Navigator is a querysync.Location backed by a remote client. It is safe
// for concurrent use.
type Navigator struct {
	mu      sync.Mutex
	current *url.URL
	sink    Sink
	logger  *slog.Logger
}

// New creates a navigator starting at initial. A nil logger means
// slog.Default().
func New(initial *url.URL, sink Sink, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	if initial == nil {
		initial = &url.URL{Path: "/"}
	}
	return &Navigator{
		current: cloneURL(initial),
		sink:    sink,
		logger:  logger,
	}
}

// URL returns a copy of the current URL.
func (n *Navigator) URL() *url.URL {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneURL(n.current)
}

// SetURL records a URL the client navigated to on its own.
func (n *Navigator) SetURL(u *url.URL) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = cloneURL(u)
}

// Replace makes u current and tells the client to replace its URL without
// reloading or adding a history entry.
func (n *Navigator) Replace(u *url.URL) {
	n.mu.Lock()
	n.current = cloneURL(u)
	msg := Message{Type: TypeReplace, URL: relative(u)}
	n.mu.Unlock()

	if n.sink == nil {
		return
	}
	if err := n.sink(msg); err != nil {
		n.logger.Warn("navigator replace not delivered", "url", msg.URL, "error", err)
	}
}

// relative strips scheme and host so the client keeps its own origin.
func relative(u *url.URL) string {
	r := url.URL{
		Path:     u.Path,
		RawPath:  u.RawPath,
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
	}
	if r.Path == "" {
		r.Path = "/"
	}
	return r.String()
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
