package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// lockedTask reads a task to find its board, locks the board scope and reads
// the task again so the caller works on fresh data.
func lockedTask(
	ctx context.Context,
	tasks domain.TaskRepository,
	locker *shared.Locker,
	op string,
	id int,
) (*domain.Task, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	task, err := shared.GetTask(ctx, tasks, op, id)
	if err != nil {
		return nil, nil, err
	}
	unlock, err := locker.Lock(ctx, domain.BoardLockKey(task.BoardID))
	if err != nil {
		return nil, nil, err
	}
	task, err = shared.GetTask(ctx, tasks, op, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return task, unlock, nil
}

// taskLanes returns the open and completed tasks of a board in lane order.
func taskLanes(ctx context.Context, tasks domain.TaskRepository, boardID int) (open, completed []*domain.Task, err error) {
	all, err := tasks.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("find tasks: %w", err)
	}
	open, completed = shared.SplitLanes(all)
	return open, completed, nil
}

// subtaskLanes returns the open and completed subtasks of a task in lane order.
func subtaskLanes(ctx context.Context, subtasks domain.SubtaskRepository, taskID int) (open, completed []*domain.Subtask, err error) {
	all, err := subtasks.FindByTask(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("find subtasks: %w", err)
	}
	open, completed = shared.SplitLanes(all)
	return open, completed, nil
}

// lockedSubtasks reads subtasks, checks that they share one task, locks that
// task's scope and reads them again.
func lockedSubtasks(
	ctx context.Context,
	subtasks domain.SubtaskRepository,
	locker *shared.Locker,
	op string,
	ids []int,
) ([]*domain.Subtask, func(), error) {
	if len(ids) == 0 {
		return nil, nil, &domain.Error{Kind: domain.ErrInvalidID, Op: op, Entity: "subtask", Detail: "no ids"}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	read := func() ([]*domain.Subtask, error) {
		items := make([]*domain.Subtask, 0, len(ids))
		for _, id := range ids {
			s, err := shared.GetSubtask(ctx, subtasks, op, id)
			if err != nil {
				return nil, err
			}
			items = append(items, s)
		}
		if err := domain.RequireSameParent(items, func(s *domain.Subtask) int { return s.TaskID }); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return items, nil
	}

	items, err := read()
	if err != nil {
		return nil, nil, err
	}
	unlock, err := locker.Lock(ctx, domain.TaskLockKey(items[0].TaskID))
	if err != nil {
		return nil, nil, err
	}
	parent := items[0].TaskID
	items, err = read()
	if err == nil && items[0].TaskID != parent {
		err = domain.InvalidState(op, "subtasks moved to another task")
	}
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return items, unlock, nil
}

// laneOf selects the lane slice matching lane.
func laneOf[T any](lane domain.Lane, open, completed []T) []T {
	if lane == domain.LaneCompleted {
		return completed
	}
	return open
}
