// Package ordering keeps sibling lists (blocks in a rundown, items in a
// block) in a unique, stable order.
// This is part of the Functional Core - no I/O, only pure functions.
//
// Order values are only compared, never required to be contiguous. Ties
// between equal order values are broken by the insertion sequence, so a
// sort is always deterministic. Insert and move renumber the minimum set of
// following siblings needed to keep every order value unique; remove never
// renumbers.
package ordering

import (
	"fmt"
	"sort"
)

// Sibling is an ordered child record.
type Sibling interface {
	SiblingID() string
	// Position returns the display order and the insertion sequence used as tie-breaker.
	Position() (order int, seq int64)
	SetOrder(order int)
}

// Change is one (id, order) pair to persist after an in-memory reorder.
type Change struct {
	ID    string
	Order int
}

// Less reports whether a sorts before b.
func Less(a, b Sibling) bool {
	ao, as := a.Position()
	bo, bs := b.Position()
	if ao != bo {
		return ao < bo
	}
	return as < bs
}

// Sort sorts siblings in place by (order, seq).
func Sort[T Sibling](siblings []T) {
	sort.SliceStable(siblings, func(i, j int) bool {
		return Less(siblings[i], siblings[j])
	})
}

// Sorted returns a sorted copy of siblings.
func Sorted[T Sibling](siblings []T) []T {
	out := make([]T, len(siblings))
	copy(out, siblings)
	Sort(out)
	return out
}

// IndexOf returns the position of id in siblings, or -1.
func IndexOf[T Sibling](siblings []T, id string) int {
	for i, s := range siblings {
		if s.SiblingID() == id {
			return i
		}
	}
	return -1
}

// InsertAt places entry so that it sorts at index among siblings (clamped
// to [0, len]). It returns the new sorted list and the order changes of the
// existing siblings; the entry's own order is set on entry.
func InsertAt[T Sibling](siblings []T, entry T, index int) ([]T, []Change) {
	list := Sorted(siblings)
	index = clamp(index, 0, len(list))

	result, changed := place(list, entry, index)

	changes := make([]Change, 0, len(changed))
	for _, i := range changed {
		if i == index {
			continue
		}
		changes = append(changes, toChange(result[i]))
	}
	return result, changes
}

// Move removes the sibling at from and reinserts it at to (clamped).
// The returned changes include the moved sibling when its order changed.
func Move[T Sibling](siblings []T, from, to int) ([]T, []Change, error) {
	list := Sorted(siblings)
	if from < 0 || from >= len(list) {
		return nil, nil, fmt.Errorf("move: index %d out of range [0, %d)", from, len(list))
	}

	entry := list[from]
	before, _ := entry.Position()

	rest := make([]T, 0, len(list)-1)
	rest = append(rest, list[:from]...)
	rest = append(rest, list[from+1:]...)
	to = clamp(to, 0, len(rest))

	result, changed := place(rest, entry, to)

	changes := make([]Change, 0, len(changed))
	for _, i := range changed {
		if i == to {
			if after, _ := entry.Position(); after == before {
				continue
			}
		}
		changes = append(changes, toChange(result[i]))
	}
	return result, changes, nil
}

// Remove deletes id from siblings without renumbering the rest.
func Remove[T Sibling](siblings []T, id string) ([]T, bool) {
	list := Sorted(siblings)
	i := IndexOf(list, id)
	if i < 0 {
		return list, false
	}
	return append(list[:i], list[i+1:]...), true
}

// NextOrder returns the order value that appends after every sibling.
func NextOrder[T Sibling](siblings []T) int {
	max := 0
	for _, s := range siblings {
		if o, _ := s.Position(); o > max {
			max = o
		}
	}
	return max + 1
}

// place inserts entry at index of an already sorted list and walks the
// list so every order value is strictly greater than its predecessor.
// It returns the indices whose order was written.
func place[T Sibling](sorted []T, entry T, index int) ([]T, []int) {
	result := make([]T, 0, len(sorted)+1)
	result = append(result, sorted[:index]...)
	result = append(result, entry)
	result = append(result, sorted[index:]...)

	switch {
	case index > 0:
		prev, _ := result[index-1].Position()
		entry.SetOrder(prev + 1)
	case len(result) > 1:
		first, _ := result[1].Position()
		entry.SetOrder(first)
	default:
		entry.SetOrder(1)
	}

	changed := []int{index}
	for i := 1; i < len(result); i++ {
		prev, _ := result[i-1].Position()
		cur, _ := result[i].Position()
		if cur <= prev {
			result[i].SetOrder(prev + 1)
			if i != index {
				changed = append(changed, i)
			}
		}
	}
	sort.Ints(changed)
	return result, changed
}

func toChange(s Sibling) Change {
	order, _ := s.Position()
	return Change{ID: s.SiblingID(), Order: order}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
