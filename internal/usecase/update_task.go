package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ScheduleInput replaces a task's schedule. The zero value clears it.
type ScheduleInput struct {
	Date *time.Time
	Time *domain.TimeOfDay
}

// UpdateTaskInput contains the parameters for editing a task.
// Nil fields are left unchanged.
// Fields are ordered to minimize memory padding.
type UpdateTaskInput struct {
	Name          *string          // New name
	Schedule      *ScheduleInput   // New schedule
	Priority      *domain.Priority // New priority
	TaskID        int              // Task to edit
	ClearPriority bool             // Remove the priority
}

// UpdateTaskOutput contains the result of editing a task.
type UpdateTaskOutput struct {
	Task     *domain.Task
	Previous *domain.Task
}

// UpdateTask is the use case for editing a task's attributes.
type UpdateTask struct {
	tasks  domain.TaskRepository
	locker *shared.Locker
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(tasks domain.TaskRepository, locker *shared.Locker) *UpdateTask {
	return &UpdateTask{
		tasks:  tasks,
		locker: locker,
	}
}

// Execute applies the edit.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	const op = "update task"

	// Validate input
	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := domain.RequireNonBlankName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil && in.ClearPriority {
		return nil, domain.InvalidState(op, "priority set and cleared at once")
	}

	task, unlock, err := lockedTask(ctx, uc.tasks, uc.locker, op, in.TaskID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	previous := task.Clone()

	if in.Name != nil {
		task.Rename(*in.Name)
	}
	if in.Schedule != nil {
		if err := task.SetSchedule(in.Schedule.Date, in.Schedule.Time); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	switch {
	case in.ClearPriority:
		_ = task.SetPriority(nil)
	case in.Priority != nil:
		if err := task.SetPriority(in.Priority); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := shared.Persist(ctx, op, "task", uc.tasks.Update, task); err != nil {
		return nil, err
	}
	return &UpdateTaskOutput{Task: task, Previous: previous}, nil
}
