package domain

import "slices"

// Move relocates the element at from to index to, clamped to [0, len-1].
// Other elements keep their relative order. It returns a new slice and
// never modifies seq. An out-of-range from returns an unchanged copy.
func Move[T any](seq []T, from, to int) []T {
	out := slices.Clone(seq)
	if from < 0 || from >= len(out) {
		return out
	}
	to = Clamp(to, 0, len(out)-1)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reindex assigns positions 0..n-1 in the current order of seq using set.
// get reads the current position (nil = none). It returns the elements whose
// position actually changed, which are the only ones that need persisting.
func Reindex[T any](seq []T, get func(T) *int, set func(T, int)) []T {
	var changed []T
	for i, item := range seq {
		if p := get(item); p != nil && *p == i {
			continue
		}
		set(item, i)
		changed = append(changed, item)
	}
	return changed
}

// SortByPosition orders seq in place by the position returned from get.
// Elements without a position go last, ordered by id.
func SortByPosition[T any](seq []T, get func(T) *int, id func(T) int) {
	slices.SortStableFunc(seq, func(a, b T) int {
		pa, pb := get(a), get(b)
		switch {
		case pa != nil && pb != nil:
			if *pa != *pb {
				return *pa - *pb
			}
		case pa != nil:
			return -1
		case pb != nil:
			return 1
		}
		return id(a) - id(b)
	})
}

// intPtr returns a pointer to v.
func intPtr(v int) *int {
	return &v
}
