package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirePositiveID(t *testing.T) {
	assert.NoError(t, RequirePositiveID("board", 1))
	assert.ErrorIs(t, RequirePositiveID("board", 0), ErrInvalidID)
	assert.ErrorIs(t, RequirePositiveID("board", -4), ErrInvalidID)

	assert.NoError(t, RequirePositiveIDs("label", []int{1, 2}))
	assert.ErrorIs(t, RequirePositiveIDs("label", []int{1, 0, 2}), ErrInvalidID)
}

func TestRequireNonBlankName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Groceries", false},
		{"padded", "  Groceries  ", false},
		{"empty", "", true},
		{"spaces", "   ", true},
		{"whitespace mix", "\t\n ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireNonBlankName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireSameParent(t *testing.T) {
	parent := func(s *Subtask) int { return s.TaskID }

	assert.NoError(t, RequireSameParent([]*Subtask{}, parent))
	assert.NoError(t, RequireSameParent([]*Subtask{{TaskID: 2}, {TaskID: 2}}, parent))
	assert.ErrorIs(t, RequireSameParent([]*Subtask{{TaskID: 2}, {TaskID: 3}}, parent), ErrInvalidState)
}

func TestError_UnwrapsToKind(t *testing.T) {
	err := fmt.Errorf("delete board: %w", NotFound("delete board", "board", 7))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "board #7 not found")

	var domErr *Error
	assert.True(t, errors.As(err, &domErr))
	assert.Equal(t, 7, domErr.ID)
}

func TestKindOf(t *testing.T) {
	assert.Nil(t, KindOf(nil))
	assert.Nil(t, KindOf(errors.New("disk full")))
	assert.Equal(t, ErrEmptyName, KindOf(ErrEmptyName))
	assert.Equal(t, ErrInvalidState, KindOf(InvalidState("op", "detail")))
	assert.Equal(t, ErrInvalidID, KindOf(RequirePositiveID("task", 0)))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: ErrInvalidState, Op: "archive board", Entity: "board", ID: 2, Detail: "cannot go from deleted to archived"}
	assert.Equal(t, "archive board: board #2 invalid state (cannot go from deleted to archived)", err.Error())
}
