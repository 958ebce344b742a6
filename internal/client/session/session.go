// Package session holds the signed-in state of the interactive client.
// Views subscribe when they are shown and unsubscribe when they are left.
package session

import (
	"sync"
	"time"
)

// Session is a signed-in contributor with their current token pair.
type Session struct {
	UserID       string
	Email        string
	FullName     string
	AccessToken  string
	RefreshToken string
	SignedInAt   time.Time
}

// Event is delivered to subscribers on every change. Session is nil after
// sign-out.
type Event struct {
	Session *Session
}

// Store is safe for concurrent use. The zero value is an empty store.
type Store struct {
	mu      sync.RWMutex
	current *Session
	nextID  int
	subs    map[int]func(Event)
}

func NewStore() *Store {
	return &Store{}
}

// Get returns a copy of the current session, or nil when signed out.
func (s *Store) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// SignedIn reports whether a session is present.
func (s *Store) SignedIn() bool {
	return s.Get() != nil
}

// Set replaces the session and notifies subscribers.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	s.current = &sess
	subs := s.snapshot()
	s.mu.Unlock()

	cp := sess
	notify(subs, Event{Session: &cp})
}

// UpdateTokens swaps the token pair of the current session without
// notifying subscribers. It is a no-op when signed out.
func (s *Store) UpdateTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current.AccessToken = access
	s.current.RefreshToken = refresh
}

// Clear signs out and notifies subscribers. Clearing an empty store does
// not notify.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	subs := s.snapshot()
	s.mu.Unlock()

	notify(subs, Event{})
}

// Subscribe registers fn for session changes and returns the function that
// removes it. The returned function may be called more than once.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Event))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// snapshot must be called with mu held.
func (s *Store) snapshot() []func(Event) {
	out := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
