package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir())

	settings, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultSettings(), settings)
}

func TestLoader_Load_MergesOverDefaults(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeConfig(t, dir, `
[boards]
sort_order = "name_desc"
grid_layout = true

[trash]
retention_days = 3

[log]
level = "debug"
`)

	// Execute
	settings, err := NewLoader(dir).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.SortNameDesc, settings.Boards.SortOrder)
	assert.True(t, settings.Boards.GridLayout)
	assert.Equal(t, 3*24*time.Hour, settings.Retention())
	assert.Equal(t, domain.DefaultSweepBatchSize, settings.BatchSize(), "default kept")
	assert.True(t, settings.Tasks.ShowCompleted, "default kept")
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Empty(t, settings.Warnings)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[boards]
colour = "red"

[theme]
name = "dark"
`)

	settings, err := NewLoader(dir).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown key in [boards]: colour",
		"unknown section: theme",
	}, settings.Warnings)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "[boards\nsort_order ="},
		{"wrong type", "[boards]\ngrid_layout = \"yes\""},
		{"invalid sort key", "[tasks]\nsort_order = \"random\""},
		{"negative retention", "[trash]\nretention_days = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewLoader(dir).Load()

			assert.Error(t, err)
		})
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(domain.DataDirEnv, "/srv/finito")

		assert.Equal(t, "/srv/finito", DefaultDataDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(domain.DataDirEnv, "")
		t.Setenv("XDG_CONFIG_HOME", "/home/u/.cfg")

		assert.Equal(t, filepath.Join("/home/u/.cfg", "finito"), DefaultDataDir())
	})
}
