package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Date     *time.Time        // Scheduled date (optional)
	Time     *domain.TimeOfDay // Scheduled time (optional, requires Date)
	Priority *domain.Priority  // Priority (optional)
	Name     string            // Task name (required, trimmed)
	BoardID  int               // Owning board
}

// CreateTaskOutput contains the result of creating a task.
type CreateTaskOutput struct {
	Task *domain.Task
}

// CreateTask is the use case for adding a task to a board.
type CreateTask struct {
	boards domain.BoardRepository
	tasks  domain.TaskRepository
	locker *shared.Locker
	clock  domain.Clock
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(boards domain.BoardRepository, tasks domain.TaskRepository, locker *shared.Locker, clock domain.Clock) *CreateTask {
	return &CreateTask{
		boards: boards,
		tasks:  tasks,
		locker: locker,
		clock:  clock,
	}
}

// Execute creates an uncompleted task at the end of the board's open lane.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	const op = "create task"

	// Validate input
	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}

	// boards keeps DeleteBoard and the trash sweep out until the insert lands
	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey, domain.BoardLockKey(in.BoardID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := shared.GetBoard(ctx, uc.boards, op, in.BoardID); err != nil {
		return nil, err
	}
	open, _, err := taskLanes(ctx, uc.tasks, in.BoardID)
	if err != nil {
		return nil, err
	}

	task := domain.NewTask(in.BoardID, in.Name, len(open), uc.clock.Now())
	if err := task.SetSchedule(in.Date, in.Time); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := task.SetPriority(in.Priority); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task.ID = id
	return &CreateTaskOutput{Task: task}, nil
}
