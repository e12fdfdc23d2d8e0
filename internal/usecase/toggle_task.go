package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ToggleTaskInput contains the parameters for completing or reopening a task.
type ToggleTaskInput struct {
	TaskID    int  // Task to toggle
	Completed bool // Desired completion state
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Task    *domain.Task
	Changed bool // False if the task already had the desired state
}

// ToggleTask is the use case for moving a task between the open and completed lanes.
type ToggleTask struct {
	tasks  domain.TaskRepository
	locker *shared.Locker
	clock  domain.Clock
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(tasks domain.TaskRepository, locker *shared.Locker, clock domain.Clock) *ToggleTask {
	return &ToggleTask{
		tasks:  tasks,
		locker: locker,
		clock:  clock,
	}
}

// Execute completes the task at the head of the completed lane, or reopens
// it at the end of the open lane. The lane it leaves is reindexed.
func (uc *ToggleTask) Execute(ctx context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	const op = "toggle task"

	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}

	task, unlock, err := lockedTask(ctx, uc.tasks, uc.locker, op, in.TaskID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if task.Completed == in.Completed {
		return &ToggleTaskOutput{Task: task}, nil
	}

	open, completed, err := taskLanes(ctx, uc.tasks, task.BoardID)
	if err != nil {
		return nil, err
	}
	open = shared.Without(open, task.ID)
	completed = shared.Without(completed, task.ID)

	var changed []*domain.Task
	if in.Completed {
		task.Complete(uc.clock.Now())
		changed = append(changed, shared.ReindexLane(open)...)
		changed = append(changed, shared.ReindexLane(shared.InsertAt(completed, 0, task))...)
	} else {
		task.Uncomplete(len(open))
		changed = append(changed, shared.ReindexLane(completed)...)
	}
	changed = shared.Without(changed, task.ID)

	if err := shared.PersistMoved(ctx, op, "task", uc.tasks.Update, task, changed...); err != nil {
		return nil, err
	}
	return &ToggleTaskOutput{Task: task, Changed: true}, nil
}
