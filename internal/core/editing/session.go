// Package editing holds the multi-tab rundown editing session: loaded
// rundowns kept in memory by key, one of them active.
// This is part of the Functional Core - no I/O, only in-memory bookkeeping.
package editing

import (
	"github.com/example/newsroom/internal/errs"
)

// NewKey is the placeholder tab shown when nothing is open.
const NewKey = "new"

// Session tracks open entries in the order they were opened.
// It is not safe for concurrent use; a single driver loop owns it.
type Session[T any] struct {
	keyOf   func(T) string
	entries map[string]T
	stale   map[string]bool
	opened  []string // oldest first
	active  string
}

// NewSession creates an empty session whose active tab is the placeholder.
func NewSession[T any](keyOf func(T) string) *Session[T] {
	return &Session[T]{
		keyOf:   keyOf,
		entries: make(map[string]T),
		stale:   make(map[string]bool),
		active:  NewKey,
	}
}

// Open adds v (or refreshes it if already open), makes it the most recently
// opened entry and the active one, and returns its key.
func (s *Session[T]) Open(v T) string {
	key := s.keyOf(v)
	if _, ok := s.entries[key]; ok {
		s.dropFromOrder(key)
	}
	s.entries[key] = v
	delete(s.stale, key)
	s.opened = append(s.opened, key)
	s.active = key
	return key
}

// Replace swaps the value held under an open key without changing the
// opening order or the active tab. It clears the stale flag.
func (s *Session[T]) Replace(v T) error {
	key := s.keyOf(v)
	if _, ok := s.entries[key]; !ok {
		return errs.NotFound("tab", key)
	}
	s.entries[key] = v
	delete(s.stale, key)
	return nil
}

// Close evicts key from memory. Closing the active tab selects the most
// recently opened remaining tab, or the placeholder.
func (s *Session[T]) Close(key string) error {
	if _, ok := s.entries[key]; !ok {
		return errs.NotFound("tab", key)
	}
	delete(s.entries, key)
	delete(s.stale, key)
	s.dropFromOrder(key)
	if s.active == key {
		s.active = NewKey
		if n := len(s.opened); n > 0 {
			s.active = s.opened[n-1]
		}
	}
	return nil
}

// SetActive selects an open tab or the placeholder.
func (s *Session[T]) SetActive(key string) error {
	if key != NewKey {
		if _, ok := s.entries[key]; !ok {
			return errs.NotFound("tab", key)
		}
	}
	s.active = key
	return nil
}

// ActiveKey returns the key of the active tab (NewKey when none).
func (s *Session[T]) ActiveKey() string { return s.active }

// Active returns the active entry; ok is false on the placeholder.
func (s *Session[T]) Active() (T, bool) {
	return s.Get(s.active)
}

// Get returns the entry held under key.
func (s *Session[T]) Get(key string) (T, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Keys returns the open keys, oldest first.
func (s *Session[T]) Keys() []string {
	out := make([]string, len(s.opened))
	copy(out, s.opened)
	return out
}

// Len returns the number of open tabs.
func (s *Session[T]) Len() int { return len(s.opened) }

// MarkStale flags key as possibly out of sync with persisted state.
func (s *Session[T]) MarkStale(key string) {
	if _, ok := s.entries[key]; ok {
		s.stale[key] = true
	}
}

// IsStale reports whether key must be reloaded before further edits.
func (s *Session[T]) IsStale(key string) bool { return s.stale[key] }

func (s *Session[T]) dropFromOrder(key string) {
	for i, k := range s.opened {
		if k == key {
			s.opened = append(s.opened[:i], s.opened[i+1:]...)
			return
		}
	}
}
