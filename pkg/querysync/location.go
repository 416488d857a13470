package querysync

import (
	"net/url"
	"sync"
)

// Location is the navigable page URL.
//
// Replace must perform a shallow navigation: no reload, no new history
// entry, no scroll change. Implementations must be safe for concurrent use;
// the deferred flush runs on a timer goroutine.
type Location interface {
	// URL returns a copy of the current URL.
	URL() *url.URL

	// Replace makes u the current URL.
	Replace(u *url.URL)
}

// MemoryLocation is an in-process Location. It is what the CLI and tests
// drive, and a reasonable stand-in wherever the real navigation layer is
// reached through some other channel.
type MemoryLocation struct {
	mu       sync.Mutex
	current  *url.URL
	replaced int
}

// NewMemoryLocation parses rawURL as the initial location.
func NewMemoryLocation(rawURL string) (*MemoryLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &MemoryLocation{current: u}, nil
}

// URL returns a copy of the current URL.
func (l *MemoryLocation) URL() *url.URL {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneURL(l.current)
}

// Replace makes u the current URL.
func (l *MemoryLocation) Replace(u *url.URL) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = cloneURL(u)
	l.replaced++
}

// Replacements returns how many times Replace has been called.
func (l *MemoryLocation) Replacements() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaced
}

// String returns the current URL.
func (l *MemoryLocation) String() string {
	return l.URL().String()
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{}
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
