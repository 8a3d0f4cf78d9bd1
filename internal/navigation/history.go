package navigation

import (
	"slices"
	"sync"
)

// Authenticator reports whether the current session is authenticated.
type Authenticator interface {
	IsAuthenticated() bool
}

// Location is a resolved entry in the [History].
type Location struct {
	Path   string
	Route  Route
	Params map[string]string
}

// Param returns the named route parameter.
func (l Location) Param(name string) string {
	return l.Params[name]
}

// History tracks visited locations with guards applied to every move.
//
// It satisfies the session navigator so the gateway can send the client to the login route.
type History struct {
	mu        sync.Mutex
	auth      Authenticator
	entries   []Location
	listeners []func(Location)
}

// NewHistory creates a history positioned at start.
func NewHistory(auth Authenticator, start string) *History {
	h := &History{auth: auth}
	h.entries = []Location{h.resolve(start)}
	return h
}

// OnChange registers fn to be called with each new current location.
func (h *History) OnChange(fn func(Location)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Current returns the location being shown.
func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Push adds a new entry for path. When a guard redirects, the new entry holds the target.
func (h *History) Push(path string) Location {
	h.mu.Lock()
	loc := h.resolve(path)
	h.entries = append(h.entries, loc)
	h.mu.Unlock()

	h.notify(loc)
	return loc
}

// Replace swaps the current entry for path.
func (h *History) Replace(path string) {
	h.mu.Lock()
	loc := h.resolve(path)
	h.entries[len(h.entries)-1] = loc
	h.mu.Unlock()

	h.notify(loc)
}

// Back drops the current entry and re-resolves the previous one.
// With a single entry it stays put.
func (h *History) Back() Location {
	h.mu.Lock()
	if len(h.entries) > 1 {
		h.entries = h.entries[:len(h.entries)-1]
	}
	loc := h.resolve(h.entries[len(h.entries)-1].Path)
	h.entries[len(h.entries)-1] = loc
	h.mu.Unlock()

	h.notify(loc)
	return loc
}

// Revalidate re-applies the guards to the current entry, for use after the session changes.
func (h *History) Revalidate() Location {
	h.Replace(h.Current().Path)
	return h.Current()
}

// resolve follows guard redirects until a route renders. Redirect targets never redirect
// back under the same session, so one hop is enough in practice.
func (h *History) resolve(path string) Location {
	authenticated := h.auth != nil && h.auth.IsAuthenticated()

	path = Clean(path)
	for range 3 {
		d := Resolve(path, authenticated)
		if d.Redirect == "" {
			return Location{Path: path, Route: d.Route, Params: d.Params}
		}
		path = d.Redirect
	}
	return Location{Path: path, Route: NotFound}
}

func (h *History) notify(loc Location) {
	h.mu.Lock()
	listeners := slices.Clone(h.listeners)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(loc)
	}
}
