package domain

import (
	"fmt"
	"path/filepath"
)

// DataDirEnv overrides the data directory.
const DataDirEnv = "FINITO_HOME"

// AppDirName is the directory name under the user config home.
const AppDirName = "finito"

// AppDataDir returns the data directory under configHome.
// Format: <configHome>/finito
func AppDataDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "finito.log")
}

// BoardLogPath returns the path to a board's log file.
// Format: <dataDir>/logs/board-<id>.log
func BoardLogPath(dataDir string, boardID int) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("board-%d.log", boardID))
}

// ConfigPath returns the path to the settings file.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// BoardsLockKey is the serialization scope of the board lanes.
// Task lanes use "board:<id>" and subtask lanes "task:<id>".
const BoardsLockKey = "boards"

// BoardLockKey returns the lock key guarding a board's task lanes.
func BoardLockKey(boardID int) string {
	return fmt.Sprintf("board:%d", boardID)
}

// TaskLockKey returns the lock key guarding a task's subtask lanes.
func TaskLockKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}
