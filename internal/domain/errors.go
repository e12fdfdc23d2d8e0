package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every use case failure unwraps to exactly one of these
// unless it is an infrastructure error from a repository.
var (
	ErrInvalidID    = errors.New("invalid id")
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
)

// kinds lists the error kinds in match order.
var kinds = []error{ErrInvalidID, ErrEmptyName, ErrInvalidState, ErrNotFound}

// Error attaches the failing operation and entity to an error kind.
// Fields are ordered to minimize memory padding.
type Error struct {
	Kind   error  // One of the Err* kinds
	Op     string // Operation that failed, e.g. "archive board"
	Entity string // Entity type, e.g. "board"
	Detail string // Optional human readable detail
	ID     int    // Entity ID (0 = not applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Entity != "" {
		b.WriteString(e.Entity)
		if e.ID != 0 {
			fmt.Fprintf(&b, " #%d", e.ID)
		}
		b.WriteString(" ")
	}
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(" (")
		b.WriteString(e.Detail)
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the error kind so errors.Is matches it.
func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the error kind of err, or nil if err is not a domain error.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// NotFound returns an ErrNotFound error for an entity.
func NotFound(op, entity string, id int) error {
	return &Error{Kind: ErrNotFound, Op: op, Entity: entity, ID: id}
}

// InvalidState returns an ErrInvalidState error with a detail message.
func InvalidState(op, detail string) error {
	return &Error{Kind: ErrInvalidState, Op: op, Detail: detail}
}
