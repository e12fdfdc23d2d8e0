package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// UpdateBoardInput contains the parameters for editing a board.
// Nil fields are left unchanged.
type UpdateBoardInput struct {
	Name     *string            // New name
	LabelIDs *[]int             // Desired label set (empty slice detaches all)
	State    *domain.BoardState // Target lifecycle state
	BoardID  int                // Board to edit
}

// UpdateBoardOutput contains the result of editing a board.
type UpdateBoardOutput struct {
	Board    *domain.BoardWithLabels // The board after the edit
	Previous *domain.BoardWithLabels // The board before the edit, for undo
}

// Undo returns the input that re-applies the previous name, labels and state.
func (o *UpdateBoardOutput) Undo() UpdateBoardInput {
	name := o.Previous.Name
	labels := o.Previous.LabelIDs()
	state := o.Previous.State
	return UpdateBoardInput{BoardID: o.Previous.ID, Name: &name, LabelIDs: &labels, State: &state}
}

// UpdateBoard is the use case for a combined board edit: rename, lifecycle
// transition and label reconciliation in one step.
// Fields are ordered to minimize memory padding.
type UpdateBoard struct {
	labels domain.LabelRepository
	refs   domain.BoardLabelRefRepository
	sync   *shared.LabelSynchronizer
	locker *shared.Locker
	logger domain.Logger
	lanes  boardLanes
}

// NewUpdateBoard creates a new UpdateBoard use case.
func NewUpdateBoard(
	boards domain.BoardRepository,
	labels domain.LabelRepository,
	refs domain.BoardLabelRefRepository,
	locker *shared.Locker,
	clock domain.Clock,
	logger domain.Logger,
) *UpdateBoard {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &UpdateBoard{
		labels: labels,
		refs:   refs,
		sync:   shared.NewLabelSynchronizer(refs),
		locker: locker,
		logger: logger,
		lanes:  boardLanes{boards: boards, clock: clock},
	}
}

// Execute applies the edit. The board row is written first, then reindexed
// siblings, then the label set.
func (uc *UpdateBoard) Execute(ctx context.Context, in UpdateBoardInput) (*UpdateBoardOutput, error) {
	const op = "update board"

	// Validate input
	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := domain.RequireNonBlankName(*in.Name); err != nil {
			return nil, err
		}
	}
	var labelIDs []int
	if in.LabelIDs != nil {
		if err := domain.RequirePositiveIDs("label", *in.LabelIDs); err != nil {
			return nil, err
		}
		labelIDs = shared.UniqueIDs(*in.LabelIDs)
	}
	if in.State != nil && !in.State.IsValid() {
		return nil, domain.InvalidState(op, fmt.Sprintf("unknown state %q", *in.State))
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
	prevLabels, err := shared.LabelsOf(ctx, uc.refs, uc.labels, board.ID)
	if err != nil {
		return nil, err
	}
	previous := &domain.BoardWithLabels{Board: board.Clone(), Labels: prevLabels}

	if in.LabelIDs != nil {
		if err := shared.RequireLabels(ctx, uc.labels, op, labelIDs); err != nil {
			return nil, err
		}
	}

	if in.Name != nil {
		board.Rename(*in.Name)
	}

	var siblings []*domain.Board
	if in.State != nil && *in.State != board.State {
		target := *in.State
		siblings, err = uc.lanes.transition(ctx, board, func(b *domain.Board, now time.Time) error {
			return b.TransitionTo(target, now)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := uc.lanes.persist(ctx, op, board, siblings); err != nil {
		uc.logger.Warn(board.ID, "board", err.Error())
		return nil, err
	}

	if in.LabelIDs != nil {
		res, err := uc.sync.Sync(ctx, board.ID, labelIDs)
		if err != nil {
			uc.logger.Warn(board.ID, "labels", err.Error())
			return nil, err
		}
		if res.Changed() {
			uc.logger.Debug(board.ID, "labels", fmt.Sprintf("removed %v, added %v", res.Removed, res.Inserted))
		}
	}

	labels, err := shared.LabelsOf(ctx, uc.refs, uc.labels, board.ID)
	if err != nil {
		return nil, err
	}
	if previous.State != board.State {
		uc.logger.Info(board.ID, "lifecycle", fmt.Sprintf("%s -> %s", previous.State, board.State))
	}

	return &UpdateBoardOutput{
		Board:    &domain.BoardWithLabels{Board: board, Labels: labels},
		Previous: previous,
	}, nil
}
