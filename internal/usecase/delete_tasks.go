package usecase

import (
	"context"
	"slices"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// DeleteTasksInput contains the parameters for deleting tasks.
type DeleteTasksInput struct {
	TaskIDs []int // Tasks to delete (at least one)
}

// DeleteTasksOutput contains the result of deleting tasks.
type DeleteTasksOutput struct {
	Removed []int // Deleted task IDs
	Boards  []int // Boards whose lanes were reindexed
}

// DeleteTasks is the use case for deleting tasks, possibly across boards.
type DeleteTasks struct {
	tasks  domain.TaskRepository
	locker *shared.Locker
}

// NewDeleteTasks creates a new DeleteTasks use case.
func NewDeleteTasks(tasks domain.TaskRepository, locker *shared.Locker) *DeleteTasks {
	return &DeleteTasks{
		tasks:  tasks,
		locker: locker,
	}
}

// Execute deletes the tasks with their subtasks and closes the gaps in
// both lanes of every affected board.
func (uc *DeleteTasks) Execute(ctx context.Context, in DeleteTasksInput) (*DeleteTasksOutput, error) {
	const op = "delete tasks"

	if len(in.TaskIDs) == 0 {
		return nil, &domain.Error{Kind: domain.ErrInvalidID, Op: op, Entity: "task", Detail: "no ids"}
	}
	if err := domain.RequirePositiveIDs("task", in.TaskIDs); err != nil {
		return nil, err
	}
	ids := shared.UniqueIDs(in.TaskIDs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	boardIDs, err := uc.boardsOf(ctx, op, ids)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(boardIDs))
	for i, id := range boardIDs {
		keys[i] = domain.BoardLockKey(id)
	}
	unlock, err := uc.locker.Lock(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-read under the lock; a task may have moved or vanished
	locked, err := uc.boardsOf(ctx, op, ids)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(locked, boardIDs) {
		return nil, domain.InvalidState(op, "tasks changed while waiting")
	}

	if err := shared.RemoveAll(ctx, op, "task", uc.tasks.Remove, ids...); err != nil {
		return nil, err
	}

	for _, boardID := range boardIDs {
		open, completed, err := taskLanes(ctx, uc.tasks, boardID)
		if err != nil {
			return nil, err
		}
		changed := append(shared.ReindexLane(open), shared.ReindexLane(completed)...)
		if err := shared.Persist(ctx, op, "task", uc.tasks.Update, changed...); err != nil {
			return nil, err
		}
	}
	return &DeleteTasksOutput{Removed: ids, Boards: boardIDs}, nil
}

// boardsOf returns the sorted distinct boards owning the tasks.
func (uc *DeleteTasks) boardsOf(ctx context.Context, op string, ids []int) ([]int, error) {
	var boards []int
	for _, id := range ids {
		task, err := shared.GetTask(ctx, uc.tasks, op, id)
		if err != nil {
			return nil, err
		}
		boards = append(boards, task.BoardID)
	}
	slices.Sort(boards)
	return slices.Compact(boards), nil
}
