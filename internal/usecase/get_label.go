package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// GetLabelInput contains the parameters for reading a label.
type GetLabelInput struct {
	LabelID int
}

// GetLabelOutput contains the label.
type GetLabelOutput struct {
	Label *domain.Label
}

// GetLabel is the use case for reading one label.
type GetLabel struct {
	labels domain.LabelRepository
}

// NewGetLabel creates a new GetLabel use case.
func NewGetLabel(labels domain.LabelRepository) *GetLabel {
	return &GetLabel{labels: labels}
}

// Execute returns the label.
func (uc *GetLabel) Execute(ctx context.Context, in GetLabelInput) (*GetLabelOutput, error) {
	if err := domain.RequirePositiveID("label", in.LabelID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label, err := shared.GetLabel(ctx, uc.labels, "get label", in.LabelID)
	if err != nil {
		return nil, err
	}
	return &GetLabelOutput{Label: label}, nil
}
