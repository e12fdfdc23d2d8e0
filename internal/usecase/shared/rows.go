// Package shared provides helpers shared by use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// ExpectRows converts a rows-affected shortfall into domain.ErrNotFound.
// A shortfall means the target changed or vanished between read and write.
func ExpectRows(op, entity string, id, want, got int) error {
	if got < want {
		return &domain.Error{
			Kind:   domain.ErrNotFound,
			Op:     op,
			Entity: entity,
			ID:     id,
			Detail: fmt.Sprintf("%d of %d rows affected", got, want),
		}
	}
	return nil
}

// Persist writes items through update and verifies that every row was affected.
// It does nothing when items is empty.
func Persist[T domain.Orderable](
	ctx context.Context,
	op, entity string,
	update func(context.Context, ...T) (int, error),
	items ...T,
) error {
	if len(items) == 0 {
		return nil
	}
	n, err := update(ctx, items...)
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", op, entity, err)
	}
	id := 0
	if len(items) == 1 {
		id = items[0].OrderID()
	}
	return ExpectRows(op, entity, id, len(items), n)
}

// PersistMoved writes moved together with its reindexed siblings in one
// update, so the repository stores all of them or none. A mismatch is
// reported against moved.
func PersistMoved[T domain.Orderable](
	ctx context.Context,
	op, entity string,
	update func(context.Context, ...T) (int, error),
	moved T,
	siblings ...T,
) error {
	items := append([]T{moved}, siblings...)
	n, err := update(ctx, items...)
	if err != nil {
		return fmt.Errorf("%s: update %s: %w", op, entity, err)
	}
	return ExpectRows(op, entity, moved.OrderID(), len(items), n)
}

// RemoveAll deletes ids through remove and verifies that every row was affected.
func RemoveAll(
	ctx context.Context,
	op, entity string,
	remove func(context.Context, ...int) (int, error),
	ids ...int,
) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := remove(ctx, ids...)
	if err != nil {
		return fmt.Errorf("%s: remove %s: %w", op, entity, err)
	}
	id := 0
	if len(ids) == 1 {
		id = ids[0]
	}
	return ExpectRows(op, entity, id, len(ids), n)
}

// UniqueIDs returns ids without duplicates, keeping first occurrences.
func UniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
