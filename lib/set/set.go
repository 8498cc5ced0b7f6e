package set

import (
	"cmp"
	"slices"
)

// Set represents a set.
// It is implemented as a thin wrapper over a map with a zero sized value.
type Set[T comparable] struct {
	values map[T]struct{}
}

// WithCapacity creates a new set with the given capacity.
func WithCapacity[T comparable](cap int) Set[T] {
	return Set[T]{values: make(map[T]struct{}, cap)}
}

// Len returns the number of values in the Set.
func (s *Set[T]) Len() int {
	return len(s.values)
}

// Contains returns true iff the value is part of the Set.
func (s *Set[T]) Contains(value T) bool {
	_, ok := s.values[value]
	return ok
}

// Add adds the given value to the set. Returns true,
// iff the value was not part of the set and was actually added.
func (s *Set[T]) Add(value T) bool {
	if s.Contains(value) {
		return false
	}

	if s.values == nil {
		s.values = map[T]struct{}{}
	}

	s.values[value] = struct{}{}

	return true
}

// Sorted returns the values of the set in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	result := make([]T, 0, s.Len())
	for value := range s.values {
		result = append(result, value)
	}

	slices.Sort(result)
	return result
}
