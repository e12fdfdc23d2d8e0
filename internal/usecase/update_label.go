package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// UpdateLabelInput contains the parameters for renaming a label.
type UpdateLabelInput struct {
	Name    string // New name (required, trimmed)
	LabelID int    // Label to rename
}

// UpdateLabelOutput contains the result of renaming a label.
type UpdateLabelOutput struct {
	Label    *domain.Label
	Previous *domain.Label
}

// UpdateLabel is the use case for renaming a label.
type UpdateLabel struct {
	labels domain.LabelRepository
}

// NewUpdateLabel creates a new UpdateLabel use case.
func NewUpdateLabel(labels domain.LabelRepository) *UpdateLabel {
	return &UpdateLabel{labels: labels}
}

// Execute renames the label.
func (uc *UpdateLabel) Execute(ctx context.Context, in UpdateLabelInput) (*UpdateLabelOutput, error) {
	const op = "update label"

	if err := domain.RequirePositiveID("label", in.LabelID); err != nil {
		return nil, err
	}
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label, err := shared.GetLabel(ctx, uc.labels, op, in.LabelID)
	if err != nil {
		return nil, err
	}
	previous := label.Clone()
	label.Rename(in.Name)

	n, err := uc.labels.Update(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("update label: %w", err)
	}
	if err := shared.ExpectRows(op, "label", label.ID, 1, n); err != nil {
		return nil, err
	}
	return &UpdateLabelOutput{Label: label, Previous: previous}, nil
}
