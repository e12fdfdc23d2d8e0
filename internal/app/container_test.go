package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/testutil"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	c, err := New(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_WiresStoreAndSettings(t *testing.T) {
	// Setup
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName),
		[]byte("[boards]\nsort_order = \"name_asc\"\n"), 0600))

	// Execute
	c, err := New(context.Background(), dir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	// Assert
	assert.Equal(t, filepath.Join(dir, domain.StoreFileName), c.Config.StorePath)
	assert.Equal(t, domain.SortNameAsc, c.Settings.Boards.SortOrder)
	assert.FileExists(t, c.Config.StorePath)
	assert.NotNil(t, c.Feed)
	assert.NotNil(t, c.Exporter)
}

func TestNew_InvalidConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName),
		[]byte("[tasks]\nsort_order = \"random\"\n"), 0600))

	c, err := New(context.Background(), dir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.SortCustom, c.Settings.Tasks.SortOrder)
	assert.Len(t, c.Settings.Warnings, 1)

	_, err = c.ShowSettingsUseCase().Execute(context.Background(), usecase.ShowSettingsInput{})
	assert.Error(t, err)
}

func TestContainer_BoardRoundTrip(t *testing.T) {
	// Setup
	c := newTestContainer(t)
	ctx := context.Background()

	// Execute
	created, err := c.CreateBoardUseCase().Execute(ctx, usecase.CreateBoardInput{Name: "Groceries"})
	require.NoError(t, err)
	_, err = c.CreateTaskUseCase().Execute(ctx, usecase.CreateTaskInput{BoardID: created.Board.ID, Name: "Milk"})
	require.NoError(t, err)

	// Assert
	out, err := c.ListBoardsUseCase().Execute(ctx, usecase.ListBoardsInput{})
	require.NoError(t, err)
	require.Len(t, out.Boards, 1)
	assert.Equal(t, "Groceries", out.Boards[0].Name)

	tasks, err := c.Tasks.FindByBoard(ctx, created.Board.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.FileExists(t, domain.GlobalLogPath(c.Config.DataDir))
}

func TestContainer_WatchSeesWrites(t *testing.T) {
	// Setup
	c := newTestContainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := c.ListBoardsUseCase().Watch(ctx, usecase.ListBoardsInput{})
	require.NoError(t, err)
	first := <-stream
	require.NoError(t, first.Err)
	assert.Empty(t, first.Value.Boards)

	// Execute
	_, err = c.CreateBoardUseCase().Execute(ctx, usecase.CreateBoardInput{Name: "Trip"})
	require.NoError(t, err)

	// Assert
	select {
	case snap := <-stream:
		require.NoError(t, snap.Err)
		require.Len(t, snap.Value.Boards, 1)
		assert.Equal(t, "Trip", snap.Value.Boards[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after write")
	}
}

// raceTolerated reports errors a racing caller can legitimately see, such as
// a board already moved by another goroutine or an index past a shrunk lane.
func raceTolerated(err error) bool {
	return err == nil ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrInvalidID) ||
		errors.Is(err, domain.ErrNotFound)
}

func contiguous(positions []int) bool {
	sort.Ints(positions)
	for i, p := range positions {
		if p != i {
			return false
		}
	}
	return true
}

func TestContainer_ConcurrentLanesStayContiguous(t *testing.T) {
	// Setup
	c := newTestContainer(t)
	ctx := context.Background()

	var boardIDs []int
	for i := range 6 {
		out, err := c.CreateBoardUseCase().Execute(ctx, usecase.CreateBoardInput{Name: fmt.Sprintf("Board %d", i)})
		require.NoError(t, err)
		boardIDs = append(boardIDs, out.Board.ID)
	}
	home := boardIDs[0]
	var taskIDs []int
	for i := range 6 {
		out, err := c.CreateTaskUseCase().Execute(ctx, usecase.CreateTaskInput{BoardID: home, Name: fmt.Sprintf("Task %d", i)})
		require.NoError(t, err)
		taskIDs = append(taskIDs, out.Task.ID)
	}

	// Execute
	const rounds = 15
	var wg sync.WaitGroup
	run := func(name string, fn func(i int) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rounds {
				err := fn(i)
				assert.Truef(t, raceTolerated(err), "%s round %d: %v", name, i, err)
			}
		}()
	}
	// home stays active so its task lanes remain writable throughout
	others := boardIDs[1:]
	run("reorder boards", func(i int) error {
		_, err := c.ReorderBoardsUseCase().Execute(ctx, usecase.ReorderBoardsInput{From: i % 3, To: (i + 2) % 4})
		return err
	})
	run("archive", func(i int) error {
		id := others[i%len(others)]
		if _, err := c.ArchiveBoardUseCase().Execute(ctx, usecase.BoardTransitionInput{BoardID: id}); !raceTolerated(err) {
			return err
		}
		_, err := c.UnarchiveBoardUseCase().Execute(ctx, usecase.BoardTransitionInput{BoardID: id})
		return err
	})
	run("trash", func(i int) error {
		id := others[(i+2)%len(others)]
		if _, err := c.TrashBoardUseCase().Execute(ctx, usecase.BoardTransitionInput{BoardID: id}); !raceTolerated(err) {
			return err
		}
		if i%3 == 0 {
			return nil
		}
		_, err := c.RestoreBoardUseCase().Execute(ctx, usecase.BoardTransitionInput{BoardID: id})
		return err
	})
	run("create task", func(i int) error {
		_, err := c.CreateTaskUseCase().Execute(ctx, usecase.CreateTaskInput{BoardID: home, Name: fmt.Sprintf("Extra %d", i)})
		return err
	})
	run("toggle", func(i int) error {
		_, err := c.ToggleTaskUseCase().Execute(ctx, usecase.ToggleTaskInput{TaskID: taskIDs[i%len(taskIDs)], Completed: i%2 == 0})
		return err
	})
	run("reorder tasks", func(i int) error {
		lane := domain.LaneOpen
		if i%2 == 1 {
			lane = domain.LaneCompleted
		}
		_, err := c.ReorderTasksUseCase().Execute(ctx, usecase.ReorderTasksInput{BoardID: home, Lane: lane, From: 0, To: i % 3})
		return err
	})
	wg.Wait()

	// Assert
	for _, state := range []domain.BoardState{domain.BoardActive, domain.BoardArchived, domain.BoardDeleted} {
		boards, err := c.Boards.FindByState(ctx, state)
		require.NoError(t, err)
		var positions []int
		for _, b := range boards {
			assert.NoError(t, b.CheckInvariant())
			if p := b.LanePosition(); p != nil {
				positions = append(positions, *p)
			}
		}
		assert.Truef(t, contiguous(positions), "%s lane: %v", state, positions)
	}

	tasks, err := c.Tasks.FindByBoard(ctx, home)
	require.NoError(t, err)
	assert.Len(t, tasks, len(taskIDs)+rounds)
	lanes := map[domain.Lane][]int{}
	for _, task := range tasks {
		p := task.LanePosition()
		require.NotNil(t, p, "task %d", task.ID)
		lanes[task.Lane()] = append(lanes[task.Lane()], *p)
	}
	for lane, positions := range lanes {
		assert.Truef(t, contiguous(positions), "%s lane: %v", lane, positions)
	}
}

func TestContainer_SettingsRoundTrip(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	_, err := c.SetSettingUseCase().Execute(ctx, usecase.SetSettingInput{Key: "trash.retention_days", Value: "9"})
	require.NoError(t, err)

	out, err := c.ShowSettingsUseCase().Execute(ctx, usecase.ShowSettingsInput{})
	require.NoError(t, err)
	assert.Equal(t, 9, out.Settings.Trash.RetentionDays)
	assert.Equal(t, filepath.Join(c.Config.DataDir, domain.ConfigFileName), out.Path)
}

func TestNewWithDeps(t *testing.T) {
	store := testutil.NewMockStore()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}

	c := NewWithDeps(Config{DataDir: "/tmp/finito"}, Repositories{
		Boards:   store.Boards,
		Labels:   store.Labels,
		Refs:     store.Refs,
		Tasks:    store.Tasks,
		Subtasks: store.Subtasks,
	}, clock, nil, nil)

	out, err := c.CreateBoardUseCase().Execute(context.Background(), usecase.CreateBoardInput{Name: "Work"})
	require.NoError(t, err)
	assert.Equal(t, clock.NowTime, out.Board.CreatedAt)
	assert.Equal(t, domain.NopLogger{}, c.Logger)
	assert.NoError(t, c.Close())
}
