package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysAgo(n int) time.Time {
	return testNow.AddDate(0, 0, -n)
}

func TestSweepTrash_OnlyPastRetention(t *testing.T) {
	// Setup
	f := newFixture(t)
	recent := f.trashedBoard("Recent", 0, daysAgo(2))
	week := f.trashedBoard("Week", 1, daysAgo(7))
	old := f.trashedBoard("Old", 2, daysAgo(10))
	active := f.activeBoards("Keep")
	uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, f.logger, domain.NewDefaultSettings())

	// Execute
	out, err := uc.Execute(context.Background(), usecase.SweepTrashInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{old.ID, week.ID}, out.Candidates, "oldest removal first")
	assert.Equal(t, []int{old.ID, week.ID}, out.Removed)
	assert.Zero(t, out.Remaining)
	require.Contains(t, f.store.Boards.Items, recent.ID)
	assert.Equal(t, []int{0, 0}, f.boardPositions(recent.ID, active[0].ID))
	assert.Len(t, f.store.Boards.Items, 2)
	assert.Contains(t, f.logger.Categories(), "sweep")
}

func TestSweepTrash_BoundedBatch(t *testing.T) {
	// Setup
	f := newFixture(t)
	a := f.trashedBoard("A", 0, daysAgo(8))
	b := f.trashedBoard("B", 1, daysAgo(9))
	c := f.trashedBoard("C", 2, daysAgo(9))
	settings := domain.NewDefaultSettings()
	settings.Trash.SweepBatchSize = 2
	uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, nil, settings)

	// Execute
	out, err := uc.Execute(context.Background(), usecase.SweepTrashInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{b.ID, c.ID, a.ID}, out.Candidates, "ties broken by id")
	assert.Equal(t, []int{b.ID, c.ID}, out.Removed)
	assert.Equal(t, 1, out.Remaining)
	assert.Equal(t, []int{0}, f.boardPositions(a.ID))

	// Re-running picks up the rest
	out, err = uc.Execute(context.Background(), usecase.SweepTrashInput{})
	require.NoError(t, err)
	assert.Equal(t, []int{a.ID}, out.Removed)
	assert.Empty(t, f.store.Boards.Items)

	// Nothing left is a no-op
	out, err = uc.Execute(context.Background(), usecase.SweepTrashInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Candidates)
	assert.Empty(t, out.Removed)
}

func TestSweepTrash_RetentionSetting(t *testing.T) {
	f := newFixture(t)
	b := f.trashedBoard("B", 0, daysAgo(2))
	settings := domain.NewDefaultSettings()
	settings.Trash.RetentionDays = 1
	uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, nil, settings)

	out, err := uc.Execute(context.Background(), usecase.SweepTrashInput{})

	require.NoError(t, err)
	assert.Equal(t, []int{b.ID}, out.Removed)
}

func TestSweepTrash_Errors(t *testing.T) {
	t.Run("find error", func(t *testing.T) {
		f := newFixture(t)
		f.store.Boards.FindErr = assert.AnError
		uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, nil, nil)

		_, err := uc.Execute(context.Background(), usecase.SweepTrashInput{})

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("short remove", func(t *testing.T) {
		f := newFixture(t)
		f.trashedBoard("A", 0, daysAgo(8))
		f.trashedBoard("B", 1, daysAgo(9))
		f.store.Boards.ShortRemove = true
		uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, f.logger, nil)

		_, err := uc.Execute(context.Background(), usecase.SweepTrashInput{})

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, f.logger.Categories(), "sweep")
	})
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	// Setup
	f := newFixture(t)
	f.trashedBoard("Old", 0, daysAgo(30))
	uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sweeps []*usecase.SweepTrashOutput
	sweeper := usecase.NewSweeper(uc, time.Hour, func(out *usecase.SweepTrashOutput) {
		sweeps = append(sweeps, out)
		cancel()
	})

	// Execute
	err := sweeper.Run(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, sweeps, 1)
	assert.Len(t, sweeps[0].Removed, 1)
	assert.Empty(t, f.store.Boards.Items)
}

func TestSweeper_DefaultInterval(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewSweepTrash(f.store.Boards, f.locker, f.clock, nil, nil)

	sweeper := usecase.NewSweeper(uc, 0, nil)

	assert.Equal(t, domain.DefaultSweepInterval, sweeper.Interval())
}
