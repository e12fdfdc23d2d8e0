package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// UpdateSubtaskInput contains the parameters for renaming a subtask.
type UpdateSubtaskInput struct {
	Name      string // New name (required, trimmed)
	SubtaskID int    // Subtask to rename
}

// UpdateSubtaskOutput contains the result of renaming a subtask.
type UpdateSubtaskOutput struct {
	Subtask  *domain.Subtask
	Previous *domain.Subtask
}

// UpdateSubtask is the use case for renaming a subtask.
type UpdateSubtask struct {
	subtasks domain.SubtaskRepository
	locker   *shared.Locker
}

// NewUpdateSubtask creates a new UpdateSubtask use case.
func NewUpdateSubtask(subtasks domain.SubtaskRepository, locker *shared.Locker) *UpdateSubtask {
	return &UpdateSubtask{
		subtasks: subtasks,
		locker:   locker,
	}
}

// Execute renames the subtask.
func (uc *UpdateSubtask) Execute(ctx context.Context, in UpdateSubtaskInput) (*UpdateSubtaskOutput, error) {
	const op = "update subtask"

	if err := domain.RequirePositiveID("subtask", in.SubtaskID); err != nil {
		return nil, err
	}
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}

	items, unlock, err := lockedSubtasks(ctx, uc.subtasks, uc.locker, op, []int{in.SubtaskID})
	if err != nil {
		return nil, err
	}
	defer unlock()

	subtask := items[0]
	previous := subtask.Clone()
	subtask.Rename(in.Name)
	if err := shared.Persist(ctx, op, "subtask", uc.subtasks.Update, subtask); err != nil {
		return nil, err
	}
	return &UpdateSubtaskOutput{Subtask: subtask, Previous: previous}, nil
}
