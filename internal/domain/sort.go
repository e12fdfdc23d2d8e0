package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortKey selects the order of a listed collection.
type SortKey string

const (
	SortNameAsc  SortKey = "name_asc"
	SortNameDesc SortKey = "name_desc"
	SortNewest   SortKey = "newest"
	SortOldest   SortKey = "oldest"
	SortCustom   SortKey = "custom" // Stored lane position (default)
)

// AllSortKeys returns all valid sort keys.
func AllSortKeys() []SortKey {
	return []SortKey{SortNameAsc, SortNameDesc, SortNewest, SortOldest, SortCustom}
}

// ParseSortKey parses a sort key. An empty string yields SortCustom.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortCustom, nil
	}
	for _, k := range AllSortKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", InvalidState("parse sort key", fmt.Sprintf("unknown sort key %q", s))
}

// Orderable is implemented by every entity the sort engine handles.
type Orderable interface {
	OrderName() string
	OrderCreatedAt() time.Time
	OrderPosition() *int
	OrderID() int
}

// Sort returns a sorted copy of items. Ties are broken by id so the result
// is deterministic.
func Sort[T Orderable](items []T, key SortKey) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if c := compareBy(a, b, key); c != 0 {
			return c
		}
		return a.OrderID() - b.OrderID()
	})
	return out
}

func compareBy[T Orderable](a, b T, key SortKey) int {
	switch key {
	case SortNameAsc:
		return strings.Compare(a.OrderName(), b.OrderName())
	case SortNameDesc:
		return strings.Compare(b.OrderName(), a.OrderName())
	case SortNewest:
		return b.OrderCreatedAt().Compare(a.OrderCreatedAt())
	case SortOldest:
		return a.OrderCreatedAt().Compare(b.OrderCreatedAt())
	default:
		pa, pb := a.OrderPosition(), b.OrderPosition()
		switch {
		case pa != nil && pb != nil:
			return *pa - *pb
		case pa != nil:
			return -1
		case pb != nil:
			return 1
		}
		return 0
	}
}

// FilterByQuery keeps items whose normalized name contains Normalize(query).
// An empty query keeps everything.
func FilterByQuery[T Orderable](items []T, query string) []T {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(items)
	}
	var out []T
	for _, item := range items {
		if strings.Contains(item.OrderName(), q) {
			out = append(out, item)
		}
	}
	return out
}

// BoardFilter narrows a board listing.
type BoardFilter struct {
	Query    string // Substring of the normalized name
	LabelIDs []int  // OR semantics: a board matches if it has any of these
}

// FilterBoards applies the label and text filters.
func FilterBoards(boards []*BoardWithLabels, f BoardFilter) []*BoardWithLabels {
	out := FilterByQuery(boards, f.Query)
	if len(f.LabelIDs) == 0 {
		return out
	}
	want := make(map[int]bool, len(f.LabelIDs))
	for _, id := range f.LabelIDs {
		want[id] = true
	}
	return slices.DeleteFunc(out, func(b *BoardWithLabels) bool {
		for _, l := range b.Labels {
			if want[l.ID] {
				return false
			}
		}
		return true
	})
}

// SortFilterBoards filters then sorts.
func SortFilterBoards(boards []*BoardWithLabels, f BoardFilter, key SortKey) []*BoardWithLabels {
	return Sort(FilterBoards(boards, f), key)
}
