// Package ordseq implements a sorted sequence container.
//
// A Sequence keeps its items in ascending order under a caller-provided
// comparison function and never holds two items that compare equal.
// It is a simple sorted list rather than a heap:
// inserting and removing items costs O(n),
// but the items can be listed in order at any time
// and the smallest items are always at the front.
package ordseq

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmpty is returned when an item is requested from an empty
	// Sequence.
	ErrEmpty = errors.New("sequence is empty")

	// ErrIndexOutOfRange is returned when a position outside
	// [0, Len()) is requested.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Sequence is an ascending sequence of items.
//
// The zero value is not usable. Use New or NewOrdered.
type Sequence[T any] struct {
	cmp   func(a, b T) int
	items []T
}

// New builds an empty Sequence ordered by the given comparison function.
//
// compare(a, b) must return a negative number if a < b,
// zero if a == b, and a positive number if a > b.
// It must define a total order over the items that will be added.
func New[T any](compare func(a, b T) int) *Sequence[T] {
	if compare == nil {
		panic("ordseq: comparison function must not be nil")
	}
	return &Sequence[T]{cmp: compare}
}

// NewOrdered builds an empty Sequence of items ordered by their natural
// ordering.
func NewOrdered[T cmp.Ordered]() *Sequence[T] {
	return New(cmp.Compare[T])
}

// IsEmpty reports whether the sequence has no items.
func (s *Sequence[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Len returns the number of items in the sequence.
func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// Insert adds item to the sequence in its sorted position.
//
// If the sequence already holds an item equal to this one,
// the sequence is left unchanged and Insert returns false.
func (s *Sequence[T]) Insert(item T) bool {
	idx, found := s.find(item)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, idx, item)
	return true
}

// Remove deletes the item equal to the given item from the sequence.
// It reports whether such an item was present.
func (s *Sequence[T]) Remove(item T) bool {
	idx, found := s.find(item)
	if !found {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

// Index returns the 0-based position of the item equal to the given item.
// The second return value is false if there is no such item.
func (s *Sequence[T]) Index(item T) (int, bool) {
	idx, found := s.find(item)
	if !found {
		return 0, false
	}
	return idx, true
}

// Contains reports whether the sequence holds an item equal to the given
// item.
func (s *Sequence[T]) Contains(item T) bool {
	_, found := s.find(item)
	return found
}

// PopAt removes and returns the item at position i.
//
// It fails with ErrEmpty if the sequence is empty,
// and with ErrIndexOutOfRange if i is not in [0, Len()).
func (s *Sequence[T]) PopAt(i int) (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrEmpty
	}
	if i < 0 || i >= len(s.items) {
		return zero, fmt.Errorf("pop %d of %d items: %w", i, len(s.items), ErrIndexOutOfRange)
	}

	item := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	return item, nil
}

// Items returns the items in the sequence from front (smallest)
// to back (largest).
//
// The returned slice is a copy and may be modified freely.
func (s *Sequence[T]) Items() []T {
	return slices.Clone(s.items)
}

// Reversed returns the items in the sequence from back (largest)
// to front (smallest).
func (s *Sequence[T]) Reversed() []T {
	items := slices.Clone(s.items)
	slices.Reverse(items)
	return items
}

// find returns the position where item is or would be inserted,
// and whether an equal item is already present.
func (s *Sequence[T]) find(item T) (int, bool) {
	return slices.BinarySearchFunc(s.items, item, s.cmp)
}
