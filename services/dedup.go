package services

import "sync"

// SeenSet tracks identity keys already admitted during one run. It grows
// monotonically and is scoped to a single run; the run controller is its
// only writer.
type SeenSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{keys: make(map[string]struct{})}
}

// Admit returns true on the first occurrence of key and records it; a
// repeat returns false and the listing is dropped.
func (s *SeenSet) Admit(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.keys[key]; exists {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Size returns the number of distinct keys admitted so far.
func (s *SeenSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
