package domain

import "time"

// Subtask is a checklist item owned by a task. It keeps the same two
// position lanes as Task.
// Fields are ordered to minimize memory padding.
type Subtask struct {
	CreatedAt         time.Time
	Position          *int
	CompletedPosition *int
	Name              string
	NormalizedName    string
	TaskID            int
	ID                int
	Completed         bool
}

// NewSubtask creates an uncompleted subtask at the given position.
func NewSubtask(taskID int, name string, position int, now time.Time) *Subtask {
	s := &Subtask{
		TaskID:    taskID,
		CreatedAt: now,
		Position:  intPtr(position),
	}
	s.Rename(name)
	return s
}

// Rename sets the display name and refreshes the normalized name.
func (s *Subtask) Rename(name string) {
	s.Name = CleanName(name)
	s.NormalizedName = Normalize(s.Name)
}

// Complete marks the subtask completed at the head of the completed lane.
func (s *Subtask) Complete() {
	s.Completed = true
	s.Position = nil
	s.CompletedPosition = intPtr(0)
}

// Uncomplete marks the subtask uncompleted at position in the uncompleted lane.
func (s *Subtask) Uncomplete(position int) {
	s.Completed = false
	s.CompletedPosition = nil
	s.Position = intPtr(position)
}

// Lane returns the lane the subtask currently belongs to.
func (s *Subtask) Lane() Lane {
	if s.Completed {
		return LaneCompleted
	}
	return LaneOpen
}

// LanePosition returns the position in the subtask's current lane.
func (s *Subtask) LanePosition() *int {
	if s.Completed {
		return s.CompletedPosition
	}
	return s.Position
}

// SetLanePosition sets the position in the subtask's current lane.
func (s *Subtask) SetLanePosition(p int) {
	if s.Completed {
		s.CompletedPosition = intPtr(p)
		return
	}
	s.Position = intPtr(p)
}

// Clone returns a deep copy of the subtask.
func (s *Subtask) Clone() *Subtask {
	c := *s
	c.Position = clonePtr(s.Position)
	c.CompletedPosition = clonePtr(s.CompletedPosition)
	return &c
}

func (s *Subtask) OrderName() string         { return s.NormalizedName }
func (s *Subtask) OrderCreatedAt() time.Time { return s.CreatedAt }
func (s *Subtask) OrderPosition() *int       { return s.LanePosition() }
func (s *Subtask) OrderID() int              { return s.ID }
