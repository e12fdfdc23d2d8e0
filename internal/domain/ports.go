package domain

import (
	"context"
	"io"
	"time"
)

// Every mutating repository call reports the number of rows it affected.
// Callers treat a shortfall as ErrNotFound: the row changed or vanished
// between read and write.

// BoardRepository manages board persistence.
type BoardRepository interface {
	// Create inserts a board and returns its new ID.
	Create(ctx context.Context, board *Board) (int, error)

	// FindByState returns boards in the given state ordered by their lane position.
	FindByState(ctx context.Context, state BoardState) ([]*Board, error)

	// FindOne retrieves a board by ID. Returns nil if not found.
	FindOne(ctx context.Context, id int) (*Board, error)

	// Update writes boards atomically and returns the number of rows affected.
	// If any board is missing nothing is written and it returns 0.
	Update(ctx context.Context, boards ...*Board) (int, error)

	// Remove deletes boards, cascading to their tasks, subtasks and refs.
	Remove(ctx context.Context, ids ...int) (int, error)
}

// LabelRepository manages label persistence.
type LabelRepository interface {
	Create(ctx context.Context, label *Label) (int, error)

	// FindAll returns every label ordered by normalized name.
	FindAll(ctx context.Context) ([]*Label, error)

	// FindOne retrieves a label by ID. Returns nil if not found.
	FindOne(ctx context.Context, id int) (*Label, error)

	Update(ctx context.Context, label *Label) (int, error)

	// Remove deletes labels, cascading to their refs only.
	Remove(ctx context.Context, ids ...int) (int, error)
}

// BoardLabelRefRepository manages the board-label join rows.
type BoardLabelRefRepository interface {
	// Create inserts refs. Inserting an existing pair is a no-op.
	Create(ctx context.Context, refs ...BoardLabelRef) error

	// FindAllByBoard returns the refs of one board.
	FindAllByBoard(ctx context.Context, boardID int) ([]BoardLabelRef, error)

	// Remove deletes refs and returns the number of rows affected.
	Remove(ctx context.Context, refs ...BoardLabelRef) (int, error)
}

// TaskRepository manages task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) (int, error)

	// FindByBoard returns the tasks of one board.
	FindByBoard(ctx context.Context, boardID int) ([]*Task, error)

	// FindOne retrieves a task by ID. Returns nil if not found.
	FindOne(ctx context.Context, id int) (*Task, error)

	Update(ctx context.Context, tasks ...*Task) (int, error)

	// Remove deletes tasks, cascading to their subtasks.
	Remove(ctx context.Context, ids ...int) (int, error)
}

// SubtaskRepository manages subtask persistence.
type SubtaskRepository interface {
	Create(ctx context.Context, subtask *Subtask) (int, error)

	// FindByTask returns the subtasks of one task.
	FindByTask(ctx context.Context, taskID int) ([]*Subtask, error)

	// FindOne retrieves a subtask by ID. Returns nil if not found.
	FindOne(ctx context.Context, id int) (*Subtask, error)

	Update(ctx context.Context, subtasks ...*Subtask) (int, error)

	Remove(ctx context.Context, ids ...int) (int, error)
}

// Topic names a collection whose changes can be watched.
type Topic string

const (
	TopicBoards   Topic = "boards"
	TopicLabels   Topic = "labels"
	TopicRefs     Topic = "refs"
	TopicTasks    Topic = "tasks"
	TopicSubtasks Topic = "subtasks"
)

// Change is a notification that a collection was written.
type Change struct {
	Time     time.Time
	Topic    Topic
	Sequence int64 // Monotonically increasing per publisher
}

// ChangeFeed delivers change notifications to watchers.
type ChangeFeed interface {
	// Subscribe returns a channel of changes for the given topics (none = all).
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context, topics ...Topic) <-chan Change
}

// ChangePublisher announces writes.
type ChangePublisher interface {
	Publish(topic Topic)
}

// BoardSnapshot is a board with everything it owns, used for export.
type BoardSnapshot struct {
	Board    *Board
	Labels   []*Label
	Tasks    []*Task
	Subtasks map[int][]*Subtask // Keyed by task ID
}

// SnapshotWriter encodes board snapshots.
type SnapshotWriter interface {
	WriteSnapshots(w io.Writer, snapshots []BoardSnapshot) error
}

// SettingsLoader loads settings from files.
type SettingsLoader interface {
	Load() (*Settings, error)
}

// SettingsManager persists individual settings keys.
type SettingsManager interface {
	Set(key, value string) error
	Path() string
}

// Logger writes operational logs. boardID 0 means no specific board.
type Logger interface {
	Info(boardID int, category, msg string)
	Debug(boardID int, category, msg string)
	Warn(boardID int, category, msg string)
	Error(boardID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(int, string, string)  {}
func (NopLogger) Debug(int, string, string) {}
func (NopLogger) Warn(int, string, string)  {}
func (NopLogger) Error(int, string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
