package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func TestNewBoard(t *testing.T) {
	b := NewBoard("  Épicerie  ", 3, testNow)

	assert.Equal(t, "Épicerie", b.Name)
	assert.Equal(t, "epicerie", b.NormalizedName)
	assert.Equal(t, BoardActive, b.State)
	require.NotNil(t, b.Position)
	assert.Equal(t, 3, *b.Position)
	assert.Nil(t, b.TrashPosition)
	assert.Equal(t, testNow, b.CreatedAt)
	assert.NoError(t, b.CheckInvariant())
}

func TestBoard_Lifecycle(t *testing.T) {
	b := NewBoard("Home", 2, testNow)
	b.ID = 1

	// active -> archived
	require.NoError(t, b.Archive(testNow))
	assert.Equal(t, BoardArchived, b.State)
	assert.Nil(t, b.Position)
	require.NotNil(t, b.ArchivedAt)
	assert.Equal(t, testNow, *b.ArchivedAt)
	assert.NoError(t, b.CheckInvariant())

	// archived -> active
	require.NoError(t, b.Unarchive())
	assert.Equal(t, BoardActive, b.State)
	require.NotNil(t, b.Position)
	assert.Equal(t, 0, *b.Position)
	assert.Nil(t, b.ArchivedAt)
	assert.NoError(t, b.CheckInvariant())

	// active -> deleted
	later := testNow.Add(time.Hour)
	require.NoError(t, b.MoveToTrash(later))
	assert.Equal(t, BoardDeleted, b.State)
	assert.Nil(t, b.Position)
	require.NotNil(t, b.TrashPosition)
	assert.Equal(t, 0, *b.TrashPosition)
	require.NotNil(t, b.RemovedAt)
	assert.Equal(t, later, *b.RemovedAt)
	assert.NoError(t, b.CheckInvariant())
	assert.NoError(t, b.CanDeleteForever())

	// deleted -> active
	require.NoError(t, b.Restore())
	assert.Equal(t, BoardActive, b.State)
	assert.Nil(t, b.RemovedAt)
	assert.Nil(t, b.TrashPosition)
	assert.Equal(t, 0, *b.Position)
	assert.NoError(t, b.CheckInvariant())
}

func TestBoard_ArchivedToTrashClearsArchivedAt(t *testing.T) {
	b := NewBoard("Home", 0, testNow)
	require.NoError(t, b.Archive(testNow))

	require.NoError(t, b.MoveToTrash(testNow))

	assert.Nil(t, b.ArchivedAt)
	assert.NoError(t, b.CheckInvariant())
}

func TestBoard_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Board)
		apply func(*Board) error
	}{
		{"unarchive active", func(*Board) {}, func(b *Board) error { return b.Unarchive() }},
		{"restore active", func(*Board) {}, func(b *Board) error { return b.Restore() }},
		{"archive archived", func(b *Board) { _ = b.Archive(testNow) }, func(b *Board) error { return b.Archive(testNow) }},
		{"archive deleted", func(b *Board) { _ = b.MoveToTrash(testNow) }, func(b *Board) error { return b.Archive(testNow) }},
		{"trash deleted", func(b *Board) { _ = b.MoveToTrash(testNow) }, func(b *Board) error { return b.MoveToTrash(testNow) }},
		{"unarchive deleted", func(b *Board) { _ = b.MoveToTrash(testNow) }, func(b *Board) error { return b.Unarchive() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard("Home", 0, testNow)
			tt.setup(b)
			before := b.Clone()

			err := tt.apply(b)

			assert.ErrorIs(t, err, ErrInvalidState)
			assert.Equal(t, before, b, "failed transition must not change the board")
		})
	}
}

func TestBoard_TransitionTo(t *testing.T) {
	b := NewBoard("Home", 0, testNow)

	require.NoError(t, b.TransitionTo(BoardActive, testNow), "same state is a no-op")
	require.NoError(t, b.TransitionTo(BoardArchived, testNow))
	assert.Equal(t, BoardArchived, b.State)
	require.NoError(t, b.TransitionTo(BoardActive, testNow))
	assert.Equal(t, BoardActive, b.State)
	require.NoError(t, b.TransitionTo(BoardDeleted, testNow))
	assert.Equal(t, BoardDeleted, b.State)
	assert.ErrorIs(t, b.TransitionTo(BoardArchived, testNow), ErrInvalidState)
	require.NoError(t, b.TransitionTo(BoardActive, testNow))
	assert.Equal(t, BoardActive, b.State)
}

func TestBoard_CanDeleteForever_NotTrashed(t *testing.T) {
	b := NewBoard("Home", 0, testNow)
	assert.ErrorIs(t, b.CanDeleteForever(), ErrInvalidState)
}

func TestBoard_CheckInvariant_Detects(t *testing.T) {
	b := NewBoard("Home", 0, testNow)
	b.TrashPosition = intPtr(1)
	assert.ErrorIs(t, b.CheckInvariant(), ErrInvalidState)
}

func TestBoard_Clone_IsDeep(t *testing.T) {
	b := NewBoard("Home", 4, testNow)
	c := b.Clone()
	*c.Position = 9
	assert.Equal(t, 4, *b.Position)
}

func TestBoard_EligibleForSweep(t *testing.T) {
	retention := 6 * 24 * time.Hour
	tests := []struct {
		name    string
		removed time.Duration // how long ago
		want    bool
	}{
		{"10 days ago", 10 * 24 * time.Hour, true},
		{"7 days ago", 7 * 24 * time.Hour, true},
		{"exactly 6 days ago", 6 * 24 * time.Hour, true},
		{"2 days ago", 2 * 24 * time.Hour, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard("Old", 0, testNow)
			require.NoError(t, b.MoveToTrash(testNow.Add(-tt.removed)))
			assert.Equal(t, tt.want, b.EligibleForSweep(testNow, retention))
		})
	}

	active := NewBoard("Active", 0, testNow)
	assert.False(t, active.EligibleForSweep(testNow, retention))
}

func TestBoardWithLabels_LabelIDs(t *testing.T) {
	b := &BoardWithLabels{
		Board:  NewBoard("Home", 0, testNow),
		Labels: []*Label{{ID: 3}, {ID: 1}},
	}
	assert.Equal(t, []int{3, 1}, b.LabelIDs())
}
