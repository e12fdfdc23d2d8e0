package usecase_test

import (
	"context"
	"testing"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/testutil"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subtaskFixture seeds one board with one task and four open subtasks.
func subtaskFixture(t *testing.T) (*fixture, *domain.Task, []*domain.Subtask) {
	t.Helper()
	f := newFixture(t)
	boards := f.activeBoards("Home")
	tasks := f.tasks(boards[0].ID, "Clean")
	subs := f.subtasks(tasks[0].ID, "s1", "s2", "s3", "s4")
	return f, tasks[0], subs
}

func subtaskIDs(subs []*domain.Subtask) []int {
	out := make([]int, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestCreateSubtask_Execute(t *testing.T) {
	f, task, _ := subtaskFixture(t)
	uc := usecase.NewCreateSubtask(f.store.Tasks, f.store.Subtasks, f.locker, f.clock)

	out, err := uc.Execute(context.Background(), usecase.CreateSubtaskInput{TaskID: task.ID, Name: " Windows "})

	require.NoError(t, err)
	assert.Equal(t, "Windows", out.Subtask.Name)
	assert.Equal(t, 4, *out.Subtask.Position)
	assert.Equal(t, task.ID, out.Subtask.TaskID)

	_, err = uc.Execute(context.Background(), usecase.CreateSubtaskInput{TaskID: 404, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// vanishingTasks drops a task right after reading it, the way a
// concurrent DeleteTasks on another scope would.
type vanishingTasks struct {
	*testutil.MockTaskRepository
}

func (r vanishingTasks) FindOne(ctx context.Context, id int) (*domain.Task, error) {
	task, err := r.MockTaskRepository.FindOne(ctx, id)
	delete(r.Items, id)
	return task, err
}

func TestCreateSubtask_TaskRemovedMidway(t *testing.T) {
	f := newFixture(t)
	boards := f.activeBoards("Move")
	tasks := f.tasks(boards[0].ID, "Pack")
	uc := usecase.NewCreateSubtask(vanishingTasks{f.store.Tasks}, f.store.Subtasks, f.locker, f.clock)

	_, err := uc.Execute(context.Background(), usecase.CreateSubtaskInput{TaskID: tasks[0].ID, Name: "Books"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.Subtasks.Items)
}

func TestUpdateSubtask_Execute(t *testing.T) {
	f, _, subs := subtaskFixture(t)
	uc := usecase.NewUpdateSubtask(f.store.Subtasks, f.locker)

	out, err := uc.Execute(context.Background(), usecase.UpdateSubtaskInput{SubtaskID: subs[0].ID, Name: "Dust"})

	require.NoError(t, err)
	assert.Equal(t, "Dust", out.Subtask.Name)
	assert.Equal(t, "s1", out.Previous.Name)

	_, err = uc.Execute(context.Background(), usecase.UpdateSubtaskInput{SubtaskID: subs[0].ID, Name: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestToggleSubtasks_KeepsInputOrder(t *testing.T) {
	// Setup
	f, _, subs := subtaskFixture(t)
	uc := usecase.NewToggleSubtasks(f.store.Subtasks, f.locker)
	ids := subtaskIDs(subs)

	// Execute
	out, err := uc.Execute(context.Background(), usecase.ToggleSubtasksInput{
		SubtaskIDs: []int{subs[2].ID, subs[0].ID},
		Completed:  true,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Changed)
	assert.Equal(t, []int{1, 0, 0, 1}, f.subtaskPositions(ids...))
	assert.True(t, f.store.Subtasks.Items[subs[0].ID].Completed)
	assert.True(t, f.store.Subtasks.Items[subs[2].ID].Completed)

	// Execute: reopen one, ask for one that is already open
	out, err = uc.Execute(context.Background(), usecase.ToggleSubtasksInput{
		SubtaskIDs: []int{subs[0].ID, subs[1].ID},
		Completed:  false,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Changed)
	assert.Equal(t, []int{2, 0, 0, 1}, f.subtaskPositions(ids...))
}

func TestToggleSubtasks_RequiresSameParent(t *testing.T) {
	f, task, subs := subtaskFixture(t)
	other := f.tasks(task.BoardID, "Other")
	foreign := f.subtasks(other[0].ID, "x")
	uc := usecase.NewToggleSubtasks(f.store.Subtasks, f.locker)

	_, err := uc.Execute(context.Background(), usecase.ToggleSubtasksInput{
		SubtaskIDs: []int{subs[0].ID, foreign[0].ID},
		Completed:  true,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, f.store.Subtasks.Updated)
}

func TestToggleSubtasks_NoIDs(t *testing.T) {
	f, _, _ := subtaskFixture(t)
	uc := usecase.NewToggleSubtasks(f.store.Subtasks, f.locker)

	_, err := uc.Execute(context.Background(), usecase.ToggleSubtasksInput{Completed: true})

	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDeleteSubtasks_Execute(t *testing.T) {
	f, task, subs := subtaskFixture(t)
	uc := usecase.NewDeleteSubtasks(f.store.Subtasks, f.locker)

	out, err := uc.Execute(context.Background(), usecase.DeleteSubtasksInput{SubtaskIDs: []int{subs[1].ID}})

	require.NoError(t, err)
	assert.Equal(t, task.ID, out.TaskID)
	assert.Equal(t, []int{0, -1, 1, 2}, f.subtaskPositions(subtaskIDs(subs)...))
}

func TestDeleteSubtasks_ShortRemove(t *testing.T) {
	f, _, subs := subtaskFixture(t)
	f.store.Subtasks.ShortRemove = true
	uc := usecase.NewDeleteSubtasks(f.store.Subtasks, f.locker)

	_, err := uc.Execute(context.Background(), usecase.DeleteSubtasksInput{SubtaskIDs: []int{subs[0].ID, subs[1].ID}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.Subtasks.Updated, "lanes are not reindexed after a failed remove")
}

func TestReorderSubtasks_Execute(t *testing.T) {
	f, task, subs := subtaskFixture(t)
	uc := usecase.NewReorderSubtasks(f.store.Subtasks, f.locker)

	out, err := uc.Execute(context.Background(), usecase.ReorderSubtasksInput{TaskID: task.ID, From: 0, To: 3})

	require.NoError(t, err)
	assert.Equal(t, 4, out.Changed)
	assert.Equal(t, []int{3, 0, 1, 2}, f.subtaskPositions(subtaskIDs(subs)...))

	_, err = uc.Execute(context.Background(), usecase.ReorderSubtasksInput{TaskID: task.ID, Lane: domain.LaneCompleted})
	assert.ErrorIs(t, err, domain.ErrInvalidState, "completed lane is empty")
}

func TestListSubtasks_Execute(t *testing.T) {
	f, task, subs := subtaskFixture(t)
	toggle := usecase.NewToggleSubtasks(f.store.Subtasks, f.locker)
	_, err := toggle.Execute(context.Background(), usecase.ToggleSubtasksInput{SubtaskIDs: []int{subs[3].ID}, Completed: true})
	require.NoError(t, err)
	uc := usecase.NewListSubtasks(f.store.Tasks, f.store.Subtasks, nil)

	out, err := uc.Execute(context.Background(), usecase.ListSubtasksInput{TaskID: task.ID})

	require.NoError(t, err)
	assert.Equal(t, subtaskIDs(subs[:3]), subtaskIDs(out.Open))
	assert.Equal(t, []int{subs[3].ID}, subtaskIDs(out.Completed))
}
