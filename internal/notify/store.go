// Package notify holds the application-wide notification state: at most one
// visible message, replaced on every Show and cleared on Hide.
//
// A Store is created once and handed to every component that shows or
// observes messages. How long a message stays visible, and whether a key or
// click dismisses it, is decided by whoever renders it.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// State is a snapshot of the store.
type State struct {
	Visible bool
	Message string
	// Version increases on every Show and Hide.
	Version uint64
}

// Listener is called with the new state after every mutation.
type Listener func(State)

type subscription struct {
	id uuid.UUID
	fn Listener
}

// Store is a single-slot notification container. The zero value is not
// usable; call New.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []subscription
}

// New returns a store with nothing visible.
func New() *Store {
	return &Store{}
}

// Show makes message the visible notification, replacing any current one.
func (s *Store) Show(message string) {
	s.set(true, message)
}

// Hide clears the visible notification.
func (s *Store) Hide() {
	s.set(false, "")
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called after every Show and Hide, before that
// call returns. The returned function removes the listener and may be called
// more than once.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	id := uuid.New()

	s.mu.Lock()
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Subscribers returns the number of registered listeners.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) set(visible bool, message string) {
	s.mu.Lock()
	s.state = State{
		Visible: visible,
		Message: message,
		Version: s.state.Version + 1,
	}
	snapshot := s.state
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	// Listeners run outside the lock so they may read or mutate the store.
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
