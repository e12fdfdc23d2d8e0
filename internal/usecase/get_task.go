package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// GetTaskInput contains the parameters for reading a task.
type GetTaskInput struct {
	TaskID int
}

// GetTaskOutput contains the task and its subtasks in lane order.
type GetTaskOutput struct {
	Task      *domain.Task
	Open      []*domain.Subtask
	Completed []*domain.Subtask
}

// GetTask is the use case for reading one task.
type GetTask struct {
	tasks    domain.TaskRepository
	subtasks domain.SubtaskRepository
}

// NewGetTask creates a new GetTask use case.
func NewGetTask(tasks domain.TaskRepository, subtasks domain.SubtaskRepository) *GetTask {
	return &GetTask{
		tasks:    tasks,
		subtasks: subtasks,
	}
}

// Execute returns the task with its subtasks.
func (uc *GetTask) Execute(ctx context.Context, in GetTaskInput) (*GetTaskOutput, error) {
	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	task, err := shared.GetTask(ctx, uc.tasks, "get task", in.TaskID)
	if err != nil {
		return nil, err
	}
	open, completed, err := subtaskLanes(ctx, uc.subtasks, task.ID)
	if err != nil {
		return nil, err
	}
	return &GetTaskOutput{Task: task, Open: open, Completed: completed}, nil
}
