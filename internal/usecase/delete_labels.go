package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// DeleteLabelsInput contains the parameters for deleting labels.
type DeleteLabelsInput struct {
	LabelIDs []int // Labels to delete (at least one)
}

// DeleteLabelsOutput contains the result of deleting labels.
type DeleteLabelsOutput struct {
	Removed []int
}

// DeleteLabels is the use case for deleting one or more labels.
// Boards lose the deleted labels but are otherwise untouched.
type DeleteLabels struct {
	labels domain.LabelRepository
	locker *shared.Locker
	logger domain.Logger
}

// NewDeleteLabels creates a new DeleteLabels use case.
func NewDeleteLabels(labels domain.LabelRepository, locker *shared.Locker, logger domain.Logger) *DeleteLabels {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &DeleteLabels{
		labels: labels,
		locker: locker,
		logger: logger,
	}
}

// Execute deletes the labels and their board refs.
func (uc *DeleteLabels) Execute(ctx context.Context, in DeleteLabelsInput) (*DeleteLabelsOutput, error) {
	const op = "delete labels"

	if len(in.LabelIDs) == 0 {
		return nil, &domain.Error{Kind: domain.ErrInvalidID, Op: op, Entity: "label", Detail: "no ids"}
	}
	if err := domain.RequirePositiveIDs("label", in.LabelIDs); err != nil {
		return nil, err
	}
	ids := shared.UniqueIDs(in.LabelIDs)

	// Refs are part of the board scope
	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := shared.RemoveAll(ctx, op, "label", uc.labels.Remove, ids...); err != nil {
		return nil, err
	}
	uc.logger.Info(0, "labels", fmt.Sprintf("deleted %v", ids))
	return &DeleteLabelsOutput{Removed: ids}, nil
}
