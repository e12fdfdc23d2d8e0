package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// CreateLabelInput contains the parameters for creating a label.
type CreateLabelInput struct {
	Name string // Label name (required, trimmed)
}

// CreateLabelOutput contains the result of creating a label.
type CreateLabelOutput struct {
	Label *domain.Label
}

// CreateLabel is the use case for creating a label.
type CreateLabel struct {
	labels domain.LabelRepository
	clock  domain.Clock
}

// NewCreateLabel creates a new CreateLabel use case.
func NewCreateLabel(labels domain.LabelRepository, clock domain.Clock) *CreateLabel {
	return &CreateLabel{
		labels: labels,
		clock:  clock,
	}
}

// Execute creates the label.
func (uc *CreateLabel) Execute(ctx context.Context, in CreateLabelInput) (*CreateLabelOutput, error) {
	if err := domain.RequireNonBlankName(in.Name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label := domain.NewLabel(in.Name, uc.clock.Now())
	id, err := uc.labels.Create(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}
	label.ID = id
	return &CreateLabelOutput{Label: label}, nil
}
