package usecase_test

import (
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/testutil"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store  *testutil.MockStore
	locker *shared.Locker
	clock  *testutil.MockClock
	logger *testutil.RecordingLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		store:  testutil.NewMockStore(),
		locker: shared.NewLocker(),
		clock:  &testutil.MockClock{NowTime: testNow},
		logger: &testutil.RecordingLogger{},
	}
}

// activeBoards seeds one active board per name at positions 0..n-1.
func (f *fixture) activeBoards(names ...string) []*domain.Board {
	out := make([]*domain.Board, len(names))
	for i, name := range names {
		out[i] = f.store.AddBoard(domain.NewBoard(name, i, testNow.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

// trashedBoard seeds a board that was moved to the trash at removedAt.
func (f *fixture) trashedBoard(name string, trashPos int, removedAt time.Time) *domain.Board {
	b := domain.NewBoard(name, 0, removedAt.Add(-time.Hour))
	_ = b.MoveToTrash(removedAt)
	b.TrashPosition = &trashPos
	return f.store.AddBoard(b)
}

func (f *fixture) archivedBoard(name string) *domain.Board {
	b := domain.NewBoard(name, 0, testNow.Add(-time.Hour))
	_ = b.Archive(testNow.Add(-time.Minute))
	return f.store.AddBoard(b)
}

func (f *fixture) labels(names ...string) []*domain.Label {
	out := make([]*domain.Label, len(names))
	for i, name := range names {
		out[i] = f.store.AddLabel(domain.NewLabel(name, testNow))
	}
	return out
}

// tasks seeds uncompleted tasks of one board at positions 0..n-1.
func (f *fixture) tasks(boardID int, names ...string) []*domain.Task {
	out := make([]*domain.Task, len(names))
	for i, name := range names {
		out[i] = f.store.AddTask(domain.NewTask(boardID, name, i, testNow))
	}
	return out
}

// subtasks seeds uncompleted subtasks of one task at positions 0..n-1.
func (f *fixture) subtasks(taskID int, names ...string) []*domain.Subtask {
	out := make([]*domain.Subtask, len(names))
	for i, name := range names {
		out[i] = f.store.AddSubtask(domain.NewSubtask(taskID, name, i, testNow))
	}
	return out
}

// boardPositions returns the stored lane position of each board ID, -1 for none.
func (f *fixture) boardPositions(ids ...int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = -1
		if b, ok := f.store.Boards.Items[id]; ok && b.LanePosition() != nil {
			out[i] = *b.LanePosition()
		}
	}
	return out
}

func (f *fixture) taskPositions(ids ...int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = -1
		if t, ok := f.store.Tasks.Items[id]; ok && t.LanePosition() != nil {
			out[i] = *t.LanePosition()
		}
	}
	return out
}

func (f *fixture) subtaskPositions(ids ...int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = -1
		if s, ok := f.store.Subtasks.Items[id]; ok && s.LanePosition() != nil {
			out[i] = *s.LanePosition()
		}
	}
	return out
}

func boardIDs(boards []*domain.Board) []int {
	out := make([]int, len(boards))
	for i, b := range boards {
		out[i] = b.ID
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
