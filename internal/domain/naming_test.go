package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	dir := filepath.Join("home", "u", ".config", "finito")

	assert.Equal(t, dir, AppDataDir(filepath.Join("home", "u", ".config")))
	assert.Equal(t, filepath.Join(dir, "logs", "finito.log"), GlobalLogPath(dir))
	assert.Equal(t, filepath.Join(dir, "logs", "board-12.log"), BoardLogPath(dir, 12))
	assert.Equal(t, filepath.Join(dir, "config.toml"), ConfigPath(dir))
}

func TestLockKeys(t *testing.T) {
	assert.Equal(t, "board:3", BoardLockKey(3))
	assert.Equal(t, "task:9", TaskLockKey(9))
	assert.NotEqual(t, BoardsLockKey, BoardLockKey(0))
}
