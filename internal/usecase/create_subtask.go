package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// CreateSubtaskInput contains the parameters for creating a subtask.
type CreateSubtaskInput struct {
	Name   string // Subtask name (required, trimmed)
	TaskID int    // Owning task
}

// CreateSubtaskOutput contains the result of creating a subtask.
type CreateSubtaskOutput struct {
	Subtask *domain.Subtask
}

// CreateSubtask is the use case for adding a subtask to a task.
type CreateSubtask struct {
	tasks    domain.TaskRepository
	subtasks domain.SubtaskRepository
	locker   *shared.Locker
	clock    domain.Clock
}

// NewCreateSubtask creates a new CreateSubtask use case.
func NewCreateSubtask(tasks domain.TaskRepository, subtasks domain.SubtaskRepository, locker *shared.Locker, clock domain.Clock) *CreateSubtask {
	return &CreateSubtask{
		tasks:    tasks,
		subtasks: subtasks,
		locker:   locker,
		clock:    clock,
	}
}

// Execute creates an uncompleted subtask at the end of the task's open lane.
func (uc *CreateSubtask) Execute(ctx context.Context, in CreateSubtaskInput) (*CreateSubtaskOutput, error) {
	const op = "create subtask"

	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, uc.locker, domain.TaskLockKey(in.TaskID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := shared.GetTask(ctx, uc.tasks, op, in.TaskID); err != nil {
		return nil, err
	}
	open, _, err := subtaskLanes(ctx, uc.subtasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	subtask := domain.NewSubtask(in.TaskID, in.Name, len(open), uc.clock.Now())
	id, err := uc.subtasks.Create(ctx, subtask)
	if err != nil {
		return nil, fmt.Errorf("create subtask: %w", err)
	}
	subtask.ID = id
	return &CreateSubtaskOutput{Subtask: subtask}, nil
}
