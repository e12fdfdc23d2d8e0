package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ListSubtasksInput contains the parameters for listing subtasks.
type ListSubtasksInput struct {
	TaskID int
}

// ListSubtasksOutput contains a task's subtasks split by lane.
type ListSubtasksOutput struct {
	Open      []*domain.Subtask
	Completed []*domain.Subtask
}

// ListSubtasks is the use case for listing the subtasks of a task.
type ListSubtasks struct {
	tasks    domain.TaskRepository
	subtasks domain.SubtaskRepository
	feed     domain.ChangeFeed
}

// NewListSubtasks creates a new ListSubtasks use case.
func NewListSubtasks(tasks domain.TaskRepository, subtasks domain.SubtaskRepository, feed domain.ChangeFeed) *ListSubtasks {
	return &ListSubtasks{
		tasks:    tasks,
		subtasks: subtasks,
		feed:     feed,
	}
}

// Execute returns both lanes in position order.
func (uc *ListSubtasks) Execute(ctx context.Context, in ListSubtasksInput) (*ListSubtasksOutput, error) {
	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	return uc.load(ctx, in)
}

// Watch streams the listing, re-reading it after every subtask change.
func (uc *ListSubtasks) Watch(ctx context.Context, in ListSubtasksInput) (<-chan Snapshot[*ListSubtasksOutput], error) {
	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	topics := []domain.Topic{domain.TopicSubtasks, domain.TopicTasks}
	return watch(ctx, uc.feed, topics, func(ctx context.Context) (*ListSubtasksOutput, error) {
		return uc.load(ctx, in)
	}), nil
}

func (uc *ListSubtasks) load(ctx context.Context, in ListSubtasksInput) (*ListSubtasksOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := shared.GetTask(ctx, uc.tasks, "list subtasks", in.TaskID); err != nil {
		return nil, err
	}
	open, completed, err := subtaskLanes(ctx, uc.subtasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	return &ListSubtasksOutput{Open: open, Completed: completed}, nil
}
