package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// DeleteSubtasksInput contains the parameters for deleting subtasks.
type DeleteSubtasksInput struct {
	SubtaskIDs []int // Subtasks of one task (at least one)
}

// DeleteSubtasksOutput contains the result of deleting subtasks.
type DeleteSubtasksOutput struct {
	Removed []int
	TaskID  int // Parent whose lanes were reindexed
}

// DeleteSubtasks is the use case for deleting subtasks of one task.
type DeleteSubtasks struct {
	subtasks domain.SubtaskRepository
	locker   *shared.Locker
}

// NewDeleteSubtasks creates a new DeleteSubtasks use case.
func NewDeleteSubtasks(subtasks domain.SubtaskRepository, locker *shared.Locker) *DeleteSubtasks {
	return &DeleteSubtasks{
		subtasks: subtasks,
		locker:   locker,
	}
}

// Execute deletes the subtasks and closes the gaps in both lanes of their task.
func (uc *DeleteSubtasks) Execute(ctx context.Context, in DeleteSubtasksInput) (*DeleteSubtasksOutput, error) {
	const op = "delete subtasks"

	if err := domain.RequirePositiveIDs("subtask", in.SubtaskIDs); err != nil {
		return nil, err
	}
	ids := shared.UniqueIDs(in.SubtaskIDs)

	items, unlock, err := lockedSubtasks(ctx, uc.subtasks, uc.locker, op, ids)
	if err != nil {
		return nil, err
	}
	defer unlock()
	taskID := items[0].TaskID

	if err := shared.RemoveAll(ctx, op, "subtask", uc.subtasks.Remove, ids...); err != nil {
		return nil, err
	}

	open, completed, err := subtaskLanes(ctx, uc.subtasks, taskID)
	if err != nil {
		return nil, err
	}
	changed := append(shared.ReindexLane(open), shared.ReindexLane(completed)...)
	if err := shared.Persist(ctx, op, "subtask", uc.subtasks.Update, changed...); err != nil {
		return nil, err
	}
	return &DeleteSubtasksOutput{Removed: ids, TaskID: taskID}, nil
}
