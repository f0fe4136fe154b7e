// Package ordering implements position assignment for lists within a board
// and cards within a list. Positions are dense zero-based ranks among
// siblings sharing a container; every mutation here returns new slices and
// leaves its inputs untouched, so callers can keep snapshots for rollback.
package ordering

import "sort"

// Item is the projection of a list or card that ordering cares about.
type Item struct {
	ID        int64
	Container int64
	Position  int
}

// Append returns the position for a new item added at the end of a container
// that currently holds count items. Siblings keep their positions.
func Append(count int) int {
	return count
}

// Sorted returns a copy of items in display order: position ascending,
// ties broken by ascending id.
func Sorted(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// indexOf returns the display index of id within sorted items, or -1.
func indexOf(items []Item, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// Reorder moves the item with the given id to display index to within a
// single container and returns the container in display order with dense
// positions. Moving an item onto its current index is a no-op: the returned
// slice carries the same positions as the input. The boolean reports whether
// any position changed.
func Reorder(items []Item, id int64, to int) ([]Item, bool) {
	s := Sorted(items)
	from := indexOf(s, id)
	if from == -1 {
		return s, false
	}
	to = clamp(to, len(s)-1)
	if to == from {
		return s, false
	}

	moved := s[from]
	rest := make([]Item, 0, len(s))
	rest = append(rest, s[:from]...)
	rest = append(rest, s[from+1:]...)

	out := make([]Item, 0, len(s))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	changed := false
	for i := range out {
		if out[i].Position != i {
			out[i].Position = i
			changed = true
		}
	}
	return out, changed
}

// Insert places moved into the destination container dst at display index to
// and returns dst in display order. Siblings at or after the insertion point
// shift down by one; the moved item adopts dst's container id. The source
// container is not renumbered (gaps after removal are tolerated).
func Insert(dst []Item, moved Item, to int, container int64) []Item {
	s := Sorted(dst)
	to = clamp(to, len(s))

	moved.Container = container
	out := make([]Item, 0, len(s)+1)
	out = append(out, s[:to]...)
	out = append(out, moved)
	out = append(out, s[to:]...)

	for i := range out {
		out[i].Position = i
	}
	return out
}

// Remove drops the item with the given id without renumbering the remaining
// siblings. Deletes tolerate the resulting gap; display order is unaffected
// because relative positions are preserved.
func Remove(items []Item, id int64) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Normalize returns the container in display order with positions rewritten
// to the dense range 0..n-1. A full board load runs this to fold back any
// gaps or duplicates accumulated from deletes and concurrent moves.
func Normalize(items []Item) []Item {
	out := Sorted(items)
	for i := range out {
		out[i].Position = i
	}
	return out
}
