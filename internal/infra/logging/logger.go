// Package logging provides file-based operational logs for finito.
// Every entry goes to the global log (<data dir>/logs/finito.log), and
// entries about a board also go to <data dir>/logs/board-N.log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to log files, opening them lazily.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock   domain.Clock
	files   map[string]*os.File // Keyed by path
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a Logger writing under dataDir.
// If dataDir is empty, logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return NewWithClock(dataDir, level, domain.RealClock{})
}

// NewWithClock creates a Logger stamping entries with clock.
func NewWithClock(dataDir string, level slog.Level, clock domain.Clock) *Logger {
	return &Logger{
		clock:   clock,
		files:   make(map[string]*os.File),
		dataDir: dataDir,
		level:   level,
	}
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// file opens or returns the log file at path. Callers hold l.mu.
func (l *Logger) file(path string) (*os.File, error) {
	if f, ok := l.files[path]; ok {
		return f, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.files[path] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	for path, f := range l.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.files, path)
	}
	return lastErr
}

// formatLog formats one entry.
// Format: [2026-03-14 09:30:00] [INFO] [board-1] [category] message
func formatLog(t time.Time, level slog.Level, boardID int, category, msg string) string {
	scope := "global"
	if boardID > 0 {
		scope = fmt.Sprintf("board-%d", boardID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		level.String(),
		scope,
		category,
		msg,
	)
}

func (l *Logger) log(level slog.Level, boardID int, category, msg string) {
	if l.dataDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.clock.Now(), level, boardID, category, msg)
	paths := []string{domain.GlobalLogPath(l.dataDir)}
	if boardID > 0 {
		paths = append(paths, domain.BoardLogPath(l.dataDir, boardID))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, path := range paths {
		if f, err := l.file(path); err == nil {
			_, _ = io.WriteString(f, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(boardID int, category, msg string) {
	l.log(slog.LevelInfo, boardID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(boardID int, category, msg string) {
	l.log(slog.LevelDebug, boardID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(boardID int, category, msg string) {
	l.log(slog.LevelWarn, boardID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(boardID int, category, msg string) {
	l.log(slog.LevelError, boardID, category, msg)
}
