package usecase

import (
	"context"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// TrashBoard is the use case for moving a board to the trash.
type TrashBoard struct {
	boardTransition
}

// NewTrashBoard creates a new TrashBoard use case.
func NewTrashBoard(boards domain.BoardRepository, locker *shared.Locker, clock domain.Clock, logger domain.Logger) *TrashBoard {
	return &TrashBoard{
		boardTransition: newBoardTransition("trash board", boards, locker, clock, logger, (*domain.Board).MoveToTrash),
	}
}

// Execute moves an active or archived board to the head of the trash.
func (uc *TrashBoard) Execute(ctx context.Context, in BoardTransitionInput) (*BoardTransitionOutput, error) {
	return uc.execute(ctx, in)
}

// RestoreBoard is the use case for taking a board out of the trash.
type RestoreBoard struct {
	boardTransition
}

// NewRestoreBoard creates a new RestoreBoard use case.
func NewRestoreBoard(boards domain.BoardRepository, locker *shared.Locker, clock domain.Clock, logger domain.Logger) *RestoreBoard {
	return &RestoreBoard{
		boardTransition: newBoardTransition("restore board", boards, locker, clock, logger,
			func(b *domain.Board, _ time.Time) error { return b.Restore() }),
	}
}

// Execute restores the board to the head of the active lane.
func (uc *RestoreBoard) Execute(ctx context.Context, in BoardTransitionInput) (*BoardTransitionOutput, error) {
	return uc.execute(ctx, in)
}
