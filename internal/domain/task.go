// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is an optional task ordinal. Higher values are more urgent.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityUrgent
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityUrgent:
		return "urgent"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// IsValid returns true if p is a known priority.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// ParsePriority parses a priority name.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "urgent":
		return PriorityUrgent, nil
	default:
		return 0, InvalidState("parse priority", fmt.Sprintf("unknown priority %q", s))
	}
}

// DateLayout is the layout of task dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, InvalidState("parse date", err.Error())
	}
	return d, nil
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, InvalidState("parse time", err.Error())
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Task is a unit of work owned by a board.
// Position is set while uncompleted and CompletedPosition while completed,
// so toggling completion never disturbs the other lane.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt         time.Time  // Creation time
	CompletedAt       *time.Time // When the task was completed (completed only)
	Date              *time.Time // Scheduled date (optional)
	Time              *TimeOfDay // Scheduled time (optional, requires Date)
	Priority          *Priority  // Optional priority
	Position          *int       // Order in the uncompleted lane
	CompletedPosition *int       // Order in the completed lane
	Name              string     // Display name (required)
	NormalizedName    string     // Normalize(Name)
	BoardID           int        // Owning board
	ID                int        // Task ID (0 = not yet persisted)
	Completed         bool       // Completion flag
}

// NewTask creates an uncompleted task at the given position.
func NewTask(boardID int, name string, position int, now time.Time) *Task {
	t := &Task{
		BoardID:   boardID,
		CreatedAt: now,
		Position:  intPtr(position),
	}
	t.Rename(name)
	return t
}

// Rename sets the display name and refreshes the normalized name.
func (t *Task) Rename(name string) {
	t.Name = CleanName(name)
	t.NormalizedName = Normalize(t.Name)
}

// SetSchedule sets the date and time. A time requires a date.
func (t *Task) SetSchedule(date *time.Time, tod *TimeOfDay) error {
	if tod != nil && date == nil {
		return &Error{Kind: ErrInvalidState, Entity: "task", ID: t.ID, Detail: "time requires a date"}
	}
	t.Date = clonePtr(date)
	t.Time = clonePtr(tod)
	return nil
}

// SetPriority sets or clears the priority.
func (t *Task) SetPriority(p *Priority) error {
	if p != nil && !p.IsValid() {
		return &Error{Kind: ErrInvalidState, Entity: "task", ID: t.ID, Detail: "unknown priority"}
	}
	t.Priority = clonePtr(p)
	return nil
}

// Complete marks the task completed at the head of the completed lane.
func (t *Task) Complete(now time.Time) {
	t.Completed = true
	t.CompletedAt = timePtr(now)
	t.Position = nil
	t.CompletedPosition = intPtr(0)
}

// Uncomplete marks the task uncompleted at position in the uncompleted lane.
func (t *Task) Uncomplete(position int) {
	t.Completed = false
	t.CompletedAt = nil
	t.CompletedPosition = nil
	t.Position = intPtr(position)
}

// Lane returns the lane the task currently belongs to.
func (t *Task) Lane() Lane {
	if t.Completed {
		return LaneCompleted
	}
	return LaneOpen
}

// LanePosition returns the position in the task's current lane.
func (t *Task) LanePosition() *int {
	if t.Completed {
		return t.CompletedPosition
	}
	return t.Position
}

// SetLanePosition sets the position in the task's current lane.
func (t *Task) SetLanePosition(p int) {
	if t.Completed {
		t.CompletedPosition = intPtr(p)
		return
	}
	t.Position = intPtr(p)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.CompletedAt = clonePtr(t.CompletedAt)
	c.Date = clonePtr(t.Date)
	c.Time = clonePtr(t.Time)
	c.Priority = clonePtr(t.Priority)
	c.Position = clonePtr(t.Position)
	c.CompletedPosition = clonePtr(t.CompletedPosition)
	return &c
}

func (t *Task) OrderName() string         { return t.NormalizedName }
func (t *Task) OrderCreatedAt() time.Time { return t.CreatedAt }
func (t *Task) OrderPosition() *int       { return t.LanePosition() }
func (t *Task) OrderID() int              { return t.ID }

// Lane identifies one of the two position lanes of tasks and subtasks.
type Lane string

const (
	LaneOpen      Lane = "open"      // Uncompleted items
	LaneCompleted Lane = "completed" // Completed items
)

// ParseLane parses a lane name.
func ParseLane(s string) (Lane, error) {
	switch Lane(s) {
	case LaneOpen, LaneCompleted:
		return Lane(s), nil
	default:
		return "", InvalidState("parse lane", fmt.Sprintf("unknown lane %q", s))
	}
}
