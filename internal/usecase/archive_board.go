package usecase

import (
	"context"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ArchiveBoard is the use case for hiding an active board.
type ArchiveBoard struct {
	boardTransition
}

// NewArchiveBoard creates a new ArchiveBoard use case.
func NewArchiveBoard(boards domain.BoardRepository, locker *shared.Locker, clock domain.Clock, logger domain.Logger) *ArchiveBoard {
	return &ArchiveBoard{
		boardTransition: newBoardTransition("archive board", boards, locker, clock, logger, (*domain.Board).Archive),
	}
}

// Execute archives the board and closes the gap it leaves in the active lane.
func (uc *ArchiveBoard) Execute(ctx context.Context, in BoardTransitionInput) (*BoardTransitionOutput, error) {
	return uc.execute(ctx, in)
}

// UnarchiveBoard is the use case for returning an archived board to the active lane.
type UnarchiveBoard struct {
	boardTransition
}

// NewUnarchiveBoard creates a new UnarchiveBoard use case.
func NewUnarchiveBoard(boards domain.BoardRepository, locker *shared.Locker, clock domain.Clock, logger domain.Logger) *UnarchiveBoard {
	return &UnarchiveBoard{
		boardTransition: newBoardTransition("unarchive board", boards, locker, clock, logger,
			func(b *domain.Board, _ time.Time) error { return b.Unarchive() }),
	}
}

// Execute unarchives the board and places it first in the active lane.
func (uc *UnarchiveBoard) Execute(ctx context.Context, in BoardTransitionInput) (*BoardTransitionOutput, error) {
	return uc.execute(ctx, in)
}
