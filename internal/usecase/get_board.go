package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// GetBoardInput contains the parameters for reading a board.
type GetBoardInput struct {
	BoardID int // Board to read
}

// GetBoardOutput contains the board and its labels.
type GetBoardOutput struct {
	Board *domain.BoardWithLabels
}

// GetBoard is the use case for reading one board.
type GetBoard struct {
	boards domain.BoardRepository
	labels domain.LabelRepository
	refs   domain.BoardLabelRefRepository
}

// NewGetBoard creates a new GetBoard use case.
func NewGetBoard(boards domain.BoardRepository, labels domain.LabelRepository, refs domain.BoardLabelRefRepository) *GetBoard {
	return &GetBoard{
		boards: boards,
		labels: labels,
		refs:   refs,
	}
}

// Execute returns the board with its labels.
func (uc *GetBoard) Execute(ctx context.Context, in GetBoardInput) (*GetBoardOutput, error) {
	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	board, err := shared.GetBoard(ctx, uc.boards, "get board", in.BoardID)
	if err != nil {
		return nil, err
	}
	labels, err := shared.LabelsOf(ctx, uc.refs, uc.labels, board.ID)
	if err != nil {
		return nil, err
	}
	return &GetBoardOutput{Board: &domain.BoardWithLabels{Board: board, Labels: labels}}, nil
}
