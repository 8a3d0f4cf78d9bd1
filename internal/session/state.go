package session

import (
	"context"
	"sync"

	"github.com/desertthunder/vidnexus/internal/models"
)

// State is the client's belief about whether the current session is authenticated.
type State int

const (
	Loading State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return ""
	}
}

// Transition describes a state change delivered to subscribers.
type Transition struct {
	From State
	To   State
}

// Store holds the session [State].
//
// Any number of readers may query it. Writes happen only through [Gateway] operations.
type Store struct {
	mu     sync.RWMutex
	state  State
	user   *models.User
	ready  chan struct{}
	subs   map[int]func(Transition)
	nextID int
}

// NewStore creates a [Store] in the [Loading] state.
func NewStore() *Store {
	return &Store{
		state: Loading,
		ready: make(chan struct{}),
		subs:  make(map[int]func(Transition)),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether the state is [Authenticated].
func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// IsLoading reports whether the initial status probe is still outstanding.
func (s *Store) IsLoading() bool {
	return s.State() == Loading
}

// User returns the account reported by the last successful probe, if any.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Ready is closed once the store leaves [Loading].
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the store leaves [Loading] or ctx is done.
func (s *Store) Wait(ctx context.Context) (State, error) {
	select {
	case <-s.ready:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Subscribe registers fn to be called after every state change. The returned func unregisters it.
//
// Callbacks run synchronously on the writer's goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Transition)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// set moves the store to next. Self-transitions and moves back to [Loading] are ignored.
func (s *Store) set(next State) bool {
	s.mu.Lock()
	prev := s.state
	if prev == next || next == Loading {
		s.mu.Unlock()
		return false
	}

	s.state = next
	if next == Unauthenticated {
		s.user = nil
	}
	if prev == Loading {
		close(s.ready)
	}

	subs := make([]func(Transition), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	t := Transition{From: prev, To: next}
	for _, fn := range subs {
		fn(t)
	}
	return true
}

func (s *Store) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}
