package native

import "sync"

// Handle identifies an entry in a ValueStore. Zero is never a valid handle.
type Handle uint32

// ValueStore hands host objects to the native engine. The host adds a value
// and passes the handle across; the engine takes it out exactly once when it
// imports the object. This is a hand-off, not a copy.
type ValueStore interface {
	Add(v any) Handle
}

// Values is an in-process ValueStore for engines implemented in Go.
// The zero value is ready to use.
type Values struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]any
}

// Add stores v and returns its handle.
func (s *Values) Add(v any) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		s.entries = make(map[Handle]any)
	}
	s.next++
	s.entries[s.next] = v
	return s.next
}

// Take removes and returns the value stored under h.
func (s *Values) Take(h Handle) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries[h]
	if ok {
		delete(s.entries, h)
	}
	return v, ok
}

// Len returns the number of values not yet taken.
func (s *Values) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
