package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ReorderBoardsInput contains the parameters for moving a board in the active lane.
type ReorderBoardsInput struct {
	From int // Current index of the board
	To   int // Target index (clamped to the lane)
}

// ReorderBoardsOutput contains the result of reordering boards.
type ReorderBoardsOutput struct {
	Boards  []*domain.Board // The active lane in its new order
	Changed int             // Number of boards whose position changed
}

// ReorderBoards is the use case for drag-reordering active boards.
type ReorderBoards struct {
	boards domain.BoardRepository
	locker *shared.Locker
}

// NewReorderBoards creates a new ReorderBoards use case.
func NewReorderBoards(boards domain.BoardRepository, locker *shared.Locker) *ReorderBoards {
	return &ReorderBoards{
		boards: boards,
		locker: locker,
	}
}

// Execute moves the board at From to To and reindexes the active lane.
func (uc *ReorderBoards) Execute(ctx context.Context, in ReorderBoardsInput) (*ReorderBoardsOutput, error) {
	const op = "reorder boards"

	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	active, err := uc.boards.FindByState(ctx, domain.BoardActive)
	if err != nil {
		return nil, fmt.Errorf("find active boards: %w", err)
	}
	lane := shared.OrderLane(active)
	if in.From < 0 || in.From >= len(lane) {
		return nil, domain.InvalidState(op, fmt.Sprintf("index %d outside lane of %d", in.From, len(lane)))
	}

	lane = domain.Move(lane, in.From, in.To)
	changed := shared.ReindexLane(lane)
	if err := shared.Persist(ctx, op, "board", uc.boards.Update, changed...); err != nil {
		return nil, err
	}
	return &ReorderBoardsOutput{Boards: lane, Changed: len(changed)}, nil
}
