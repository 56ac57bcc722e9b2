// Package orderedset provides a small insertion-ordered set with an optional
// size cap.
package orderedset

// Set keeps the first occurrence of each value in insertion order. Once the
// cap is reached further additions are ignored.
type Set[T comparable] struct {
	limit int
	items []T
	seen  map[T]struct{}
}

// New returns an empty set. A limit <= 0 means unbounded.
func New[T comparable](limit int) *Set[T] {
	return &Set[T]{limit: limit, seen: map[T]struct{}{}}
}

// Add inserts values in order and reports how many were actually added.
func (s *Set[T]) Add(values ...T) int {
	added := 0
	for _, v := range values {
		if s.Full() {
			break
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
		added++
	}
	return added
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *Set[T]) Full() bool {
	return s.limit > 0 && len(s.items) >= s.limit
}

func (s *Set[T]) Len() int { return len(s.items) }

// Values returns a copy of the members in insertion order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
