package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ReorderSubtasksInput contains the parameters for moving a subtask within one lane.
type ReorderSubtasksInput struct {
	Lane   domain.Lane // Lane to reorder (default: open)
	TaskID int         // Owning task
	From   int         // Current index in the lane
	To     int         // Target index (clamped to the lane)
}

// ReorderSubtasksOutput contains the lane in its new order.
type ReorderSubtasksOutput struct {
	Subtasks []*domain.Subtask
	Changed  int
}

// ReorderSubtasks is the use case for drag-reordering subtasks of a task.
type ReorderSubtasks struct {
	subtasks domain.SubtaskRepository
	locker   *shared.Locker
}

// NewReorderSubtasks creates a new ReorderSubtasks use case.
func NewReorderSubtasks(subtasks domain.SubtaskRepository, locker *shared.Locker) *ReorderSubtasks {
	return &ReorderSubtasks{
		subtasks: subtasks,
		locker:   locker,
	}
}

// Execute moves one subtask and reindexes its lane.
func (uc *ReorderSubtasks) Execute(ctx context.Context, in ReorderSubtasksInput) (*ReorderSubtasksOutput, error) {
	const op = "reorder subtasks"

	if err := domain.RequirePositiveID("task", in.TaskID); err != nil {
		return nil, err
	}
	laneName := in.Lane
	if laneName == "" {
		laneName = domain.LaneOpen
	}
	if _, err := domain.ParseLane(string(laneName)); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, uc.locker, domain.TaskLockKey(in.TaskID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	open, completed, err := subtaskLanes(ctx, uc.subtasks, in.TaskID)
	if err != nil {
		return nil, err
	}
	lane := laneOf(laneName, open, completed)
	if in.From < 0 || in.From >= len(lane) {
		return nil, domain.InvalidState(op, fmt.Sprintf("index %d outside %s lane of %d", in.From, laneName, len(lane)))
	}

	lane = domain.Move(lane, in.From, in.To)
	changed := shared.ReindexLane(lane)
	if err := shared.Persist(ctx, op, "subtask", uc.subtasks.Update, changed...); err != nil {
		return nil, err
	}
	return &ReorderSubtasksOutput{Subtasks: lane, Changed: len(changed)}, nil
}
