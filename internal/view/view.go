// Package view filters and sorts row snapshots for tabular display. A view
// is a pure function of its inputs: the same rows, filters and sort state
// always produce the same output, so it is safe to recompute on every
// refresh.
package view

import "sort"

// Predicate decides whether a row passes one filter. An unset filter is
// simply not added, so it passes everything.
type Predicate[T any] func(T) bool

// Key resolves a named sort field to a comparable value for a row.
type Key[T any] func(T) Comparable

// Comparable is a value a sort key resolves to. Exactly one of the
// accessor kinds is meaningful per key.
type Comparable struct {
	Str   string
	Num   float64
	IsNum bool
}

// Str wraps a string for comparison. Date strings in ISO form compare
// correctly as plain strings.
func Str(s string) Comparable { return Comparable{Str: s} }

// Num wraps a number for comparison.
func Num(n float64) Comparable { return Comparable{Num: n, IsNum: true} }

func (c Comparable) less(other Comparable) bool {
	if c.IsNum {
		return c.Num < other.Num
	}
	return c.Str < other.Str
}

// Direction is a sort direction.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// SortState tracks which key a table is sorted by, with click-to-toggle
// semantics: selecting the active key flips direction, selecting a new key
// resets to ascending.
type SortState struct {
	Key       string
	Direction Direction
}

// Toggle applies one key selection to the state.
func (s *SortState) Toggle(key string) {
	if s.Key == key {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return
	}
	s.Key = key
	s.Direction = Ascending
}

// Apply filters rows through every predicate conjunctively, then stable-sorts
// by the resolved key. A nil key leaves the incoming order untouched. The
// input slice is never mutated.
func Apply[T any](rows []T, filters []Predicate[T], key Key[T], dir Direction) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if passes(row, filters) {
			out = append(out, row)
		}
	}

	if key != nil {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := key(out[i]), key(out[j])
			if dir == Descending {
				return b.less(a)
			}
			return a.less(b)
		})
	}
	return out
}

func passes[T any](row T, filters []Predicate[T]) bool {
	for _, f := range filters {
		if f != nil && !f(row) {
			return false
		}
	}
	return true
}
