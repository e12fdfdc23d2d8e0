package shared

import (
	"slices"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Positioned is an entity that holds a position in its current lane.
type Positioned interface {
	LanePosition() *int
	SetLanePosition(p int)
	OrderID() int
}

// Laned is a task or subtask, which belongs to the open or completed lane.
type Laned interface {
	Positioned
	Lane() domain.Lane
}

// OrderLane returns a copy of items sorted by lane position.
func OrderLane[T Positioned](items []T) []T {
	out := slices.Clone(items)
	domain.SortByPosition(out, lanePosition[T], orderID[T])
	return out
}

// ReindexLane assigns contiguous positions in the current order of items
// and returns the ones whose position changed.
func ReindexLane[T Positioned](items []T) []T {
	return domain.Reindex(items, lanePosition[T], func(item T, p int) { item.SetLanePosition(p) })
}

func lanePosition[T Positioned](item T) *int { return item.LanePosition() }
func orderID[T Positioned](item T) int       { return item.OrderID() }

// Without returns items minus the ones whose ID is in ids.
func Without[T Positioned](items []T, ids ...int) []T {
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return slices.Contains(ids, item.OrderID())
	})
}

// InsertAt returns items with item inserted at index, clamped to [0, len].
func InsertAt[T any](items []T, index int, item ...T) []T {
	index = domain.Clamp(index, 0, len(items))
	return slices.Insert(slices.Clone(items), index, item...)
}

// SplitLanes separates items into the open and completed lanes, each sorted by position.
func SplitLanes[T Laned](items []T) (open, completed []T) {
	for _, item := range items {
		if item.Lane() == domain.LaneCompleted {
			completed = append(completed, item)
		} else {
			open = append(open, item)
		}
	}
	return OrderLane(open), OrderLane(completed)
}
