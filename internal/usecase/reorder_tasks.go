package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ReorderTasksInput contains the parameters for moving a task within one lane.
type ReorderTasksInput struct {
	Lane    domain.Lane // Lane to reorder (default: open)
	BoardID int         // Owning board
	From    int         // Current index in the lane
	To      int         // Target index (clamped to the lane)
}

// ReorderTasksOutput contains the lane in its new order.
type ReorderTasksOutput struct {
	Tasks   []*domain.Task
	Changed int // Number of tasks whose position changed
}

// ReorderTasks is the use case for drag-reordering tasks of a board.
type ReorderTasks struct {
	tasks  domain.TaskRepository
	locker *shared.Locker
}

// NewReorderTasks creates a new ReorderTasks use case.
func NewReorderTasks(tasks domain.TaskRepository, locker *shared.Locker) *ReorderTasks {
	return &ReorderTasks{
		tasks:  tasks,
		locker: locker,
	}
}

// Execute moves one task and reindexes its lane. The other lane is untouched.
func (uc *ReorderTasks) Execute(ctx context.Context, in ReorderTasksInput) (*ReorderTasksOutput, error) {
	const op = "reorder tasks"

	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}
	laneName := in.Lane
	if laneName == "" {
		laneName = domain.LaneOpen
	}
	if _, err := domain.ParseLane(string(laneName)); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, uc.locker, domain.BoardLockKey(in.BoardID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	open, completed, err := taskLanes(ctx, uc.tasks, in.BoardID)
	if err != nil {
		return nil, err
	}
	lane := laneOf(laneName, open, completed)
	if in.From < 0 || in.From >= len(lane) {
		return nil, domain.InvalidState(op, fmt.Sprintf("index %d outside %s lane of %d", in.From, laneName, len(lane)))
	}

	lane = domain.Move(lane, in.From, in.To)
	changed := shared.ReindexLane(lane)
	if err := shared.Persist(ctx, op, "task", uc.tasks.Update, changed...); err != nil {
		return nil, err
	}
	return &ReorderTasksOutput{Tasks: lane, Changed: len(changed)}, nil
}
