// Package modal holds the shared open/closed state for the sales
// enquiry modal. The original site kept this in a module-level store;
// here it is an injected instance so independent UI trees (and tests)
// each get their own.
package modal

import "sync"

// Store is a process-wide boolean with Open and Close as the only
// mutators. Opening while already open is a no-op observable as "still
// open"; there is no queueing.
type Store struct {
	mu   sync.Mutex
	open bool
	subs []func(open bool)
}

// NewStore returns a closed store.
func NewStore() *Store {
	return &Store{}
}

// Open marks the modal open and notifies subscribers on the
// closed-to-open edge.
func (s *Store) Open() {
	s.transition(true)
}

// Close marks the modal closed and notifies subscribers on the
// open-to-closed edge.
func (s *Store) Close() {
	s.transition(false)
}

// IsOpen reports the current flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Subscribe registers fn to be called on every edge. Subscribers are
// invoked synchronously, outside the store lock, in registration order.
func (s *Store) Subscribe(fn func(open bool)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) transition(open bool) {
	s.mu.Lock()
	if s.open == open {
		s.mu.Unlock()
		return
	}
	s.open = open
	subs := make([]func(bool), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(open)
	}
}
