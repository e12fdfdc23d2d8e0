package domain

import (
	"fmt"
	"time"
)

// Board is a top-level container of tasks with a lifecycle.
// Position is set only while active, TrashPosition only while deleted.
// ArchivedAt and RemovedAt are set only in their matching state.
// Fields are ordered to minimize memory padding.
type Board struct {
	CreatedAt      time.Time  // Creation time (immutable)
	ArchivedAt     *time.Time // When the board was archived (archived only)
	RemovedAt      *time.Time // When the board was trashed (deleted only)
	Position       *int       // Manual order among active boards (active only)
	TrashPosition  *int       // Order in the trash, most recent first (deleted only)
	Name           string     // Display name (required)
	NormalizedName string     // Normalize(Name)
	State          BoardState // Lifecycle state
	ID             int        // Board ID (0 = not yet persisted)
}

// NewBoard creates an active board at the given position.
func NewBoard(name string, position int, now time.Time) *Board {
	b := &Board{
		CreatedAt: now,
		State:     BoardActive,
		Position:  intPtr(position),
	}
	b.Rename(name)
	return b
}

// Rename sets the display name and refreshes the normalized name.
func (b *Board) Rename(name string) {
	b.Name = CleanName(name)
	b.NormalizedName = Normalize(b.Name)
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.ArchivedAt = clonePtr(b.ArchivedAt)
	c.RemovedAt = clonePtr(b.RemovedAt)
	c.Position = clonePtr(b.Position)
	c.TrashPosition = clonePtr(b.TrashPosition)
	return &c
}

// Archive moves an active board to the archive.
func (b *Board) Archive(now time.Time) error {
	if err := b.checkTransition(BoardArchived); err != nil {
		return err
	}
	b.State = BoardArchived
	b.Position = nil
	b.ArchivedAt = timePtr(now)
	return nil
}

// Unarchive returns an archived board to the head of the active list.
func (b *Board) Unarchive() error {
	if b.State != BoardArchived {
		return b.transitionError(BoardActive)
	}
	b.State = BoardActive
	b.ArchivedAt = nil
	b.Position = intPtr(0)
	return nil
}

// MoveToTrash moves an active or archived board to the head of the trash.
func (b *Board) MoveToTrash(now time.Time) error {
	if err := b.checkTransition(BoardDeleted); err != nil {
		return err
	}
	b.State = BoardDeleted
	b.Position = nil
	b.ArchivedAt = nil
	b.RemovedAt = timePtr(now)
	b.TrashPosition = intPtr(0)
	return nil
}

// Restore returns a trashed board to the head of the active list.
func (b *Board) Restore() error {
	if b.State != BoardDeleted {
		return b.transitionError(BoardActive)
	}
	b.State = BoardActive
	b.RemovedAt = nil
	b.TrashPosition = nil
	b.Position = intPtr(0)
	return nil
}

// TransitionTo applies the transition that leads to target.
// A board already in target is left unchanged.
func (b *Board) TransitionTo(target BoardState, now time.Time) error {
	if b.State == target {
		return nil
	}
	switch target {
	case BoardArchived:
		return b.Archive(now)
	case BoardDeleted:
		return b.MoveToTrash(now)
	case BoardActive:
		if b.State == BoardArchived {
			return b.Unarchive()
		}
		return b.Restore()
	default:
		return b.transitionError(target)
	}
}

// CanDeleteForever returns an error unless the board is in the trash.
func (b *Board) CanDeleteForever() error {
	if b.State != BoardDeleted {
		return &Error{
			Kind:   ErrInvalidState,
			Entity: "board",
			ID:     b.ID,
			Detail: "only trashed boards can be deleted forever",
		}
	}
	return nil
}

// CheckInvariant verifies that positions and timestamps match the state.
func (b *Board) CheckInvariant() error {
	ok := false
	switch b.State {
	case BoardActive:
		ok = b.Position != nil && b.TrashPosition == nil && b.ArchivedAt == nil && b.RemovedAt == nil
	case BoardArchived:
		ok = b.Position == nil && b.TrashPosition == nil && b.ArchivedAt != nil && b.RemovedAt == nil
	case BoardDeleted:
		ok = b.Position == nil && b.TrashPosition != nil && b.ArchivedAt == nil && b.RemovedAt != nil
	}
	if !ok {
		return &Error{Kind: ErrInvalidState, Entity: "board", ID: b.ID, Detail: "fields do not match state " + string(b.State)}
	}
	return nil
}

// LanePosition returns the position in the lane of the board's current state.
func (b *Board) LanePosition() *int {
	switch b.State {
	case BoardActive:
		return b.Position
	case BoardDeleted:
		return b.TrashPosition
	default:
		return nil
	}
}

// SetLanePosition sets the position in the lane of the board's current state.
// Archived boards have no lane and are left unchanged.
func (b *Board) SetLanePosition(p int) {
	switch b.State {
	case BoardActive:
		b.Position = intPtr(p)
	case BoardDeleted:
		b.TrashPosition = intPtr(p)
	}
}

// EligibleForSweep reports whether a trashed board has been in the trash
// for at least retention.
func (b *Board) EligibleForSweep(now time.Time, retention time.Duration) bool {
	return b.State == BoardDeleted && b.RemovedAt != nil && !b.RemovedAt.After(now.Add(-retention))
}

func (b *Board) checkTransition(target BoardState) error {
	if !b.State.CanTransitionTo(target) {
		return b.transitionError(target)
	}
	return nil
}

func (b *Board) transitionError(target BoardState) error {
	return &Error{
		Kind:   ErrInvalidState,
		Entity: "board",
		ID:     b.ID,
		Detail: fmt.Sprintf("cannot go from %s to %s", b.State, target),
	}
}

// Board order accessors used by the sort engine.

func (b *Board) OrderName() string         { return b.NormalizedName }
func (b *Board) OrderCreatedAt() time.Time { return b.CreatedAt }
func (b *Board) OrderPosition() *int       { return b.LanePosition() }
func (b *Board) OrderID() int              { return b.ID }

// BoardWithLabels pairs a board with its associated labels.
type BoardWithLabels struct {
	*Board
	Labels []*Label
}

// LabelIDs returns the ids of the board's labels.
func (b *BoardWithLabels) LabelIDs() []int {
	ids := make([]int, len(b.Labels))
	for i, l := range b.Labels {
		ids[i] = l.ID
	}
	return ids
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}
