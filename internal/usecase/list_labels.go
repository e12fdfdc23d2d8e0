package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// ListLabelsInput contains the parameters for listing labels.
type ListLabelsInput struct {
	Query string // Name substring filter
}

// ListLabelsOutput contains the labels ordered by name.
type ListLabelsOutput struct {
	Labels []*domain.Label
}

// ListLabels is the use case for listing labels.
type ListLabels struct {
	labels domain.LabelRepository
	feed   domain.ChangeFeed
}

// NewListLabels creates a new ListLabels use case.
func NewListLabels(labels domain.LabelRepository, feed domain.ChangeFeed) *ListLabels {
	return &ListLabels{
		labels: labels,
		feed:   feed,
	}
}

// Execute returns the matching labels.
func (uc *ListLabels) Execute(ctx context.Context, in ListLabelsInput) (*ListLabelsOutput, error) {
	return uc.load(ctx, in)
}

// Watch streams the listing, re-reading it after every label change.
func (uc *ListLabels) Watch(ctx context.Context, in ListLabelsInput) <-chan Snapshot[*ListLabelsOutput] {
	return watch(ctx, uc.feed, []domain.Topic{domain.TopicLabels}, func(ctx context.Context) (*ListLabelsOutput, error) {
		return uc.load(ctx, in)
	})
}

func (uc *ListLabels) load(ctx context.Context, in ListLabelsInput) (*ListLabelsOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels, err := uc.labels.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find labels: %w", err)
	}
	labels = domain.FilterByQuery(labels, in.Query)
	return &ListLabelsOutput{Labels: domain.Sort(labels, domain.SortNameAsc)}, nil
}
