// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orderedset provides a set with stable insertion-order iteration.
// Every dedup site in the extraction pipelines goes through this type so
// result ordering stays deterministic.
package orderedset

// Set is an insertion-ordered set. The zero value is not usable; call New.
type Set[T comparable] struct {
	seen  map[T]struct{}
	items []T
}

// New returns an empty Set.
func New[T comparable]() *Set[T] {
	return &Set[T]{seen: make(map[T]struct{})}
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.seen[v]
	return ok
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	return len(s.items)
}

// Items returns the elements in insertion order. The returned slice is a
// copy and safe for the caller to retain.
func (s *Set[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
