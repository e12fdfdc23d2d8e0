package shared

import (
	"context"
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func ids[T Positioned](items []T) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.OrderID()
	}
	return out
}

func TestSplitLanes(t *testing.T) {
	a := domain.NewTask(1, "a", 1, now)
	a.ID = 1
	b := domain.NewTask(1, "b", 0, now)
	b.ID = 2
	c := domain.NewTask(1, "c", 0, now)
	c.ID = 3
	c.Complete(now)

	open, completed := SplitLanes([]*domain.Task{a, b, c})

	assert.Equal(t, []int{2, 1}, ids(open))
	assert.Equal(t, []int{3}, ids(completed))
}

func TestReindexLane_InsertAtHead(t *testing.T) {
	var lane []*domain.Board
	for i := range 3 {
		b := domain.NewBoard("b", i, now)
		b.ID = i + 1
		lane = append(lane, b)
	}
	moved := domain.NewBoard("new", 0, now)
	moved.ID = 9

	changed := ReindexLane(InsertAt(lane, 0, moved))

	assert.Equal(t, []int{1, 2, 3}, ids(changed), "the inserted board already sits at 0")
	for i, b := range []*domain.Board{moved, lane[0], lane[1], lane[2]} {
		assert.Equal(t, i, *b.Position)
	}
}

func TestWithout(t *testing.T) {
	var lane []*domain.Subtask
	for i := range 4 {
		s := domain.NewSubtask(1, "s", i, now)
		s.ID = i + 1
		lane = append(lane, s)
	}

	rest := Without(lane, 2, 4)

	assert.Equal(t, []int{1, 3}, ids(rest))
	assert.Len(t, lane, 4, "input is not modified")
}

func TestInsertAt_Clamps(t *testing.T) {
	assert.Equal(t, []int{1, 2, 9}, InsertAt([]int{1, 2}, 10, 9))
	assert.Equal(t, []int{9, 1, 2}, InsertAt([]int{1, 2}, -3, 9))
}

func TestExpectRows(t *testing.T) {
	assert.NoError(t, ExpectRows("op", "board", 1, 1, 1))
	err := ExpectRows("archive board", "board", 1, 1, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "0 of 1 rows affected")
}

func TestPersist(t *testing.T) {
	store := testutil.NewMockStore()
	b := store.AddBoard(domain.NewBoard("x", 0, now))

	require.NoError(t, Persist(context.Background(), "op", "board", store.Boards.Update))
	assert.Empty(t, store.Boards.Updated, "no call for an empty set")

	require.NoError(t, Persist(context.Background(), "op", "board", store.Boards.Update, b))

	ghost := domain.NewBoard("ghost", 1, now)
	ghost.ID = 42
	err := Persist(context.Background(), "op", "board", store.Boards.Update, b, ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	store.Boards.UpdateErr = assert.AnError
	err = Persist(context.Background(), "op", "board", store.Boards.Update, b)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRemoveAll(t *testing.T) {
	store := testutil.NewMockStore()
	b := store.AddBoard(domain.NewBoard("x", 0, now))

	err := RemoveAll(context.Background(), "op", "board", store.Boards.Remove, b.ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Boards.Items)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, UniqueIDs([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestGetters_NotFound(t *testing.T) {
	store := testutil.NewMockStore()
	ctx := context.Background()

	_, err := GetBoard(ctx, store.Boards, "op", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = GetLabel(ctx, store.Labels, "op", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = GetTask(ctx, store.Tasks, "op", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = GetSubtask(ctx, store.Subtasks, "op", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	store.Boards.FindErr = assert.AnError
	_, err = GetBoard(ctx, store.Boards, "op", 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "get board")
}

func TestLabelsOf(t *testing.T) {
	store := testutil.NewMockStore()
	work := store.AddLabel(domain.NewLabel("Work", now))
	errand := store.AddLabel(domain.NewLabel("Errand", now))
	store.AddLabel(domain.NewLabel("Unused", now))
	store.Attach(1, work.ID, errand.ID)

	labels, err := LabelsOf(context.Background(), store.Refs, store.Labels, 1)

	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "Errand", labels[0].Name)
	assert.Equal(t, "Work", labels[1].Name)
}

func TestPersistMoved(t *testing.T) {
	// Setup
	store := testutil.NewMockStore()
	moved := store.AddBoard(domain.NewBoard("moved", 0, now))
	sibling := store.AddBoard(domain.NewBoard("sibling", 1, now))
	ghost := domain.NewBoard("ghost", 2, now)
	ghost.ID = 42

	// Execute
	moved.Rename("renamed")
	sibling.SetLanePosition(0)
	err := PersistMoved(context.Background(), "op", "board", store.Boards.Update, moved, sibling, ghost)

	// Assert
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, moved.ID, derr.ID)
	assert.Equal(t, [][]int{{moved.ID, sibling.ID, 42}}, store.Boards.Updated)
	assert.Equal(t, "moved", store.Boards.Items[moved.ID].Name, "nothing written")
	assert.Equal(t, 1, *store.Boards.Items[sibling.ID].Position)

	require.NoError(t, PersistMoved(context.Background(), "op", "board", store.Boards.Update, moved, sibling))
	assert.Equal(t, "renamed", store.Boards.Items[moved.ID].Name)
	assert.Equal(t, 0, *store.Boards.Items[sibling.ID].Position)
}
