package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ToggleSubtasksInput contains the parameters for completing or reopening subtasks.
type ToggleSubtasksInput struct {
	SubtaskIDs []int // Subtasks of one task (at least one)
	Completed  bool  // Desired completion state
}

// ToggleSubtasksOutput contains the result of toggling subtasks.
type ToggleSubtasksOutput struct {
	Subtasks []*domain.Subtask // The requested subtasks after the toggle
	Changed  int               // Number whose state actually changed
}

// ToggleSubtasks is the use case for moving subtasks between lanes in bulk.
type ToggleSubtasks struct {
	subtasks domain.SubtaskRepository
	locker   *shared.Locker
}

// NewToggleSubtasks creates a new ToggleSubtasks use case.
func NewToggleSubtasks(subtasks domain.SubtaskRepository, locker *shared.Locker) *ToggleSubtasks {
	return &ToggleSubtasks{
		subtasks: subtasks,
		locker:   locker,
	}
}

// Execute toggles every subtask not already in the desired state.
// Completed subtasks go to the head of the completed lane in input order.
// Reopened subtasks go to the end of the open lane in input order.
func (uc *ToggleSubtasks) Execute(ctx context.Context, in ToggleSubtasksInput) (*ToggleSubtasksOutput, error) {
	const op = "toggle subtasks"

	if err := domain.RequirePositiveIDs("subtask", in.SubtaskIDs); err != nil {
		return nil, err
	}
	ids := shared.UniqueIDs(in.SubtaskIDs)

	items, unlock, err := lockedSubtasks(ctx, uc.subtasks, uc.locker, op, ids)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var moving []*domain.Subtask
	var movingIDs []int
	for _, s := range items {
		if s.Completed != in.Completed {
			moving = append(moving, s)
			movingIDs = append(movingIDs, s.ID)
		}
	}
	if len(moving) == 0 {
		return &ToggleSubtasksOutput{Subtasks: items}, nil
	}

	open, completed, err := subtaskLanes(ctx, uc.subtasks, items[0].TaskID)
	if err != nil {
		return nil, err
	}
	open = shared.Without(open, movingIDs...)
	completed = shared.Without(completed, movingIDs...)

	var shifted []*domain.Subtask
	if in.Completed {
		for _, s := range moving {
			s.Complete()
		}
		shifted = append(shifted, shared.ReindexLane(open)...)
		shifted = append(shifted, shared.ReindexLane(shared.InsertAt(completed, 0, moving...))...)
	} else {
		for i, s := range moving {
			s.Uncomplete(len(open) + i)
		}
		shifted = shared.ReindexLane(completed)
	}

	// Moving subtasks first, then the siblings whose position shifted
	changed := make([]*domain.Subtask, 0, len(moving)+len(shifted))
	changed = append(changed, moving...)
	changed = append(changed, shared.Without(shifted, movingIDs...)...)
	if err := shared.Persist(ctx, op, "subtask", uc.subtasks.Update, changed...); err != nil {
		return nil, err
	}
	return &ToggleSubtasksOutput{Subtasks: items, Changed: len(moving)}, nil
}
