package domain

import "fmt"

// BoardState represents the lifecycle state of a board.
type BoardState string

const (
	BoardActive   BoardState = "active"   // Listed on the home screen, holds a position
	BoardArchived BoardState = "archived" // Hidden from the home screen
	BoardDeleted  BoardState = "deleted"  // In the trash, awaiting restore or permanent removal
)

// AllBoardStates returns all valid board states.
func AllBoardStates() []BoardState {
	return []BoardState{BoardActive, BoardArchived, BoardDeleted}
}

// transitions defines the allowed board state transitions.
// Flow: active ⇄ archived, active|archived → deleted → active
var transitions = map[BoardState][]BoardState{
	BoardActive:   {BoardArchived, BoardDeleted},
	BoardArchived: {BoardActive, BoardDeleted},
	BoardDeleted:  {BoardActive},
}

// CanTransitionTo returns true if the state can transition to the target state.
func (s BoardState) CanTransitionTo(target BoardState) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsValid returns true if s is a known state.
func (s BoardState) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// Display returns a human-readable representation of the state.
func (s BoardState) Display() string {
	switch s {
	case BoardActive:
		return "Active"
	case BoardArchived:
		return "Archived"
	case BoardDeleted:
		return "Trash"
	default:
		return string(s)
	}
}

// ParseBoardState parses a state name.
func ParseBoardState(s string) (BoardState, error) {
	state := BoardState(s)
	if s == "trash" {
		state = BoardDeleted
	}
	if !state.IsValid() {
		return "", InvalidState("parse board state", fmt.Sprintf("unknown state %q", s))
	}
	return state, nil
}
