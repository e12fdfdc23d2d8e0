package shared

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// LabelSyncResult describes what a label sync changed.
type LabelSyncResult struct {
	Removed  []int // Label IDs whose refs were deleted
	Inserted []int // Label IDs that were not attached before
	Desired  []int // Label IDs attached after the sync
}

// LabelSynchronizer reconciles the labels of a board with a desired set.
type LabelSynchronizer struct {
	refs domain.BoardLabelRefRepository
}

// NewLabelSynchronizer creates a new LabelSynchronizer.
func NewLabelSynchronizer(refs domain.BoardLabelRefRepository) *LabelSynchronizer {
	return &LabelSynchronizer{refs: refs}
}

// Sync makes the board's refs exactly equal to desired.
// Stale refs are removed first. Then the full desired set is inserted,
// relying on the repository to ignore pairs that already exist, so running
// Sync twice with the same set leaves the same rows as running it once.
// If fewer stale refs are removed than requested it returns ErrNotFound.
func (s *LabelSynchronizer) Sync(ctx context.Context, boardID int, desired []int) (*LabelSyncResult, error) {
	const op = "sync labels"
	desired = UniqueIDs(desired)

	existing, err := s.refs.FindAllByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("find board labels: %w", err)
	}

	want := make(map[int]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}
	had := make(map[int]bool, len(existing))
	var stale []domain.BoardLabelRef
	for _, ref := range existing {
		had[ref.LabelID] = true
		if !want[ref.LabelID] {
			stale = append(stale, ref)
		}
	}

	result := &LabelSyncResult{Desired: desired}
	if len(stale) > 0 {
		n, err := s.refs.Remove(ctx, stale...)
		if err != nil {
			return nil, fmt.Errorf("remove board labels: %w", err)
		}
		if err := ExpectRows(op, "board", boardID, len(stale), n); err != nil {
			return nil, err
		}
		for _, ref := range stale {
			result.Removed = append(result.Removed, ref.LabelID)
		}
	}

	if len(desired) > 0 {
		if err := s.refs.Create(ctx, domain.RefsFor(boardID, desired)...); err != nil {
			return nil, fmt.Errorf("create board labels: %w", err)
		}
	}
	for _, id := range desired {
		if !had[id] {
			result.Inserted = append(result.Inserted, id)
		}
	}
	return result, nil
}

// Changed reports whether the sync removed or added any ref.
func (r *LabelSyncResult) Changed() bool {
	return len(r.Removed) > 0 || len(r.Inserted) > 0
}
