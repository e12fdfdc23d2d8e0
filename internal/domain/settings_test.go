package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultSettings(t *testing.T) {
	s := NewDefaultSettings()

	assert.Equal(t, SortCustom, s.Boards.SortOrder)
	assert.Equal(t, SortCustom, s.Tasks.SortOrder)
	assert.True(t, s.Tasks.ShowCompleted)
	assert.False(t, s.Boards.GridLayout)
	assert.Equal(t, 6*24*time.Hour, s.Retention())
	assert.Equal(t, DefaultSweepBatchSize, s.BatchSize())
	assert.Equal(t, 24*time.Hour, s.SweepEvery())
	assert.NoError(t, s.Validate())
}

func TestSettings_Fallbacks(t *testing.T) {
	s := &Settings{}

	assert.Equal(t, 6*24*time.Hour, s.Retention())
	assert.Equal(t, DefaultSweepBatchSize, s.BatchSize())
	assert.Equal(t, DefaultSweepInterval, s.SweepEvery())

	s.Trash.SweepInterval = "soon"
	assert.Equal(t, DefaultSweepInterval, s.SweepEvery())

	s.Trash = TrashSettings{RetentionDays: 30, SweepBatchSize: 2, SweepInterval: "1h"}
	assert.Equal(t, 30*24*time.Hour, s.Retention())
	assert.Equal(t, 2, s.BatchSize())
	assert.Equal(t, time.Hour, s.SweepEvery())
}

func TestSettings_StorePath(t *testing.T) {
	s := NewDefaultSettings()
	assert.Equal(t, filepath.Join("data", "finito.db"), s.StorePath("data"))

	s.Store.Path = "/tmp/other.db"
	assert.Equal(t, "/tmp/other.db", s.StorePath("data"))
}

func TestSettings_Validate(t *testing.T) {
	s := NewDefaultSettings()
	s.Boards.SortOrder = "shuffle"
	assert.ErrorIs(t, s.Validate(), ErrInvalidState)

	s = NewDefaultSettings()
	s.Trash.RetentionDays = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalidState)
}
