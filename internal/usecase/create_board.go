package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// CreateBoardInput contains the parameters for creating a board.
type CreateBoardInput struct {
	Name     string // Board name (required, trimmed)
	LabelIDs []int  // Labels to attach (optional)
}

// CreateBoardOutput contains the result of creating a board.
type CreateBoardOutput struct {
	Board *domain.BoardWithLabels // The created board
}

// CreateBoard is the use case for creating a new board.
// Fields are ordered to minimize memory padding.
type CreateBoard struct {
	boards domain.BoardRepository
	labels domain.LabelRepository
	refs   domain.BoardLabelRefRepository
	sync   *shared.LabelSynchronizer
	locker *shared.Locker
	clock  domain.Clock
	logger domain.Logger
}

// NewCreateBoard creates a new CreateBoard use case.
func NewCreateBoard(
	boards domain.BoardRepository,
	labels domain.LabelRepository,
	refs domain.BoardLabelRefRepository,
	locker *shared.Locker,
	clock domain.Clock,
	logger domain.Logger,
) *CreateBoard {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &CreateBoard{
		boards: boards,
		labels: labels,
		refs:   refs,
		sync:   shared.NewLabelSynchronizer(refs),
		locker: locker,
		clock:  clock,
		logger: logger,
	}
}

// Execute creates an active board at the end of the active lane and attaches its labels.
func (uc *CreateBoard) Execute(ctx context.Context, in CreateBoardInput) (*CreateBoardOutput, error) {
	const op = "create board"

	// Validate input
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}
	if err := domain.RequirePositiveIDs("label", in.LabelIDs); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	labelIDs := shared.UniqueIDs(in.LabelIDs)
	if err := shared.RequireLabels(ctx, uc.labels, op, labelIDs); err != nil {
		return nil, err
	}

	active, err := uc.boards.FindByState(ctx, domain.BoardActive)
	if err != nil {
		return nil, fmt.Errorf("find active boards: %w", err)
	}

	board := domain.NewBoard(in.Name, len(active), uc.clock.Now())
	id, err := uc.boards.Create(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	board.ID = id

	if len(labelIDs) > 0 {
		if _, err := uc.sync.Sync(ctx, board.ID, labelIDs); err != nil {
			return nil, err
		}
	}
	labels, err := shared.LabelsOf(ctx, uc.refs, uc.labels, board.ID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(board.ID, "board", fmt.Sprintf("created %q", board.Name))
	return &CreateBoardOutput{Board: &domain.BoardWithLabels{Board: board, Labels: labels}}, nil
}
