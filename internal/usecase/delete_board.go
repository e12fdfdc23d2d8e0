package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// DeleteBoardInput contains the parameters for permanently deleting a board.
type DeleteBoardInput struct {
	BoardID int // Board to delete
}

// DeleteBoardOutput contains the result of deleting a board.
type DeleteBoardOutput struct {
	Board *domain.Board // The deleted board
}

// DeleteBoard is the use case for permanently deleting a trashed board.
type DeleteBoard struct {
	locker *shared.Locker
	logger domain.Logger
	lanes  boardLanes
}

// NewDeleteBoard creates a new DeleteBoard use case.
func NewDeleteBoard(boards domain.BoardRepository, locker *shared.Locker, clock domain.Clock, logger domain.Logger) *DeleteBoard {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &DeleteBoard{
		locker: locker,
		logger: logger,
		lanes:  boardLanes{boards: boards, clock: clock},
	}
}

// Execute removes the board with its tasks and subtasks, then closes the
// gap in the trash lane. Only boards in the trash can be deleted.
func (uc *DeleteBoard) Execute(ctx context.Context, in DeleteBoardInput) (*DeleteBoardOutput, error) {
	const op = "delete board"

	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	board, err := shared.GetBoard(ctx, uc.lanes.boards, op, in.BoardID)
	if err != nil {
		return nil, err
	}
	if err := board.CanDeleteForever(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := shared.RemoveAll(ctx, op, "board", uc.lanes.boards.Remove, board.ID); err != nil {
		return nil, err
	}
	if err := uc.lanes.closeGaps(ctx, op, domain.BoardDeleted); err != nil {
		return nil, err
	}

	uc.logger.Info(board.ID, "lifecycle", "deleted forever")
	return &DeleteBoardOutput{Board: board}, nil
}
