package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// EmptyTrashInput contains the parameters for emptying the trash.
type EmptyTrashInput struct{}

// EmptyTrashOutput contains the result of emptying the trash.
type EmptyTrashOutput struct {
	Removed []int // IDs of the deleted boards
}

// EmptyTrash is the use case for permanently deleting every trashed board.
type EmptyTrash struct {
	boards domain.BoardRepository
	locker *shared.Locker
	logger domain.Logger
}

// NewEmptyTrash creates a new EmptyTrash use case.
func NewEmptyTrash(boards domain.BoardRepository, locker *shared.Locker, logger domain.Logger) *EmptyTrash {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &EmptyTrash{
		boards: boards,
		locker: locker,
		logger: logger,
	}
}

// Execute deletes all boards in the trash.
func (uc *EmptyTrash) Execute(ctx context.Context, _ EmptyTrashInput) (*EmptyTrashOutput, error) {
	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	trashed, err := uc.boards.FindByState(ctx, domain.BoardDeleted)
	if err != nil {
		return nil, fmt.Errorf("find deleted boards: %w", err)
	}
	ids := make([]int, len(trashed))
	for i, b := range trashed {
		ids[i] = b.ID
	}

	if err := shared.RemoveAll(ctx, "empty trash", "board", uc.boards.Remove, ids...); err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		uc.logger.Info(0, "trash", fmt.Sprintf("emptied %d boards", len(ids)))
	}
	return &EmptyTrashOutput{Removed: ids}, nil
}
