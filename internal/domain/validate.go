package domain

import (
	"fmt"
	"strings"
)

// RequirePositiveID fails with ErrInvalidID unless id > 0.
func RequirePositiveID(entity string, id int) error {
	if id <= 0 {
		return &Error{Kind: ErrInvalidID, Entity: entity, Detail: fmt.Sprintf("got %d", id)}
	}
	return nil
}

// RequirePositiveIDs checks every id and returns the first failure.
func RequirePositiveIDs(entity string, ids []int) error {
	for _, id := range ids {
		if err := RequirePositiveID(entity, id); err != nil {
			return err
		}
	}
	return nil
}

// RequireNonBlankName fails with ErrEmptyName if name is blank after trimming.
func RequireNonBlankName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// RequireSameParent fails with ErrInvalidState unless all items share one parent.
// An empty slice passes.
func RequireSameParent[T any](items []T, parentOf func(T) int) error {
	if len(items) == 0 {
		return nil
	}
	first := parentOf(items[0])
	for _, item := range items[1:] {
		if p := parentOf(item); p != first {
			return InvalidState("", fmt.Sprintf("items belong to different parents (%d and %d)", first, p))
		}
	}
	return nil
}
