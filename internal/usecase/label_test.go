package usecase_test

import (
	"context"
	"testing"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLabel_Execute(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewCreateLabel(f.store.Labels, f.clock)

	out, err := uc.Execute(context.Background(), usecase.CreateLabelInput{Name: " Érrands "})

	require.NoError(t, err)
	assert.Equal(t, "Érrands", out.Label.Name)
	assert.Equal(t, "errands", out.Label.NormalizedName)
	assert.Equal(t, testNow, out.Label.CreatedAt)
	assert.Contains(t, f.store.Labels.Items, out.Label.ID)

	_, err = uc.Execute(context.Background(), usecase.CreateLabelInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestCreateLabel_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.store.Labels.CreateErr = assert.AnError
	uc := usecase.NewCreateLabel(f.store.Labels, f.clock)

	_, err := uc.Execute(context.Background(), usecase.CreateLabelInput{Name: "x"})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestUpdateLabel_Execute(t *testing.T) {
	f := newFixture(t)
	labels := f.labels("Old")
	uc := usecase.NewUpdateLabel(f.store.Labels)

	out, err := uc.Execute(context.Background(), usecase.UpdateLabelInput{LabelID: labels[0].ID, Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", out.Label.Name)
	assert.Equal(t, "Old", out.Previous.Name)

	f.store.Labels.ShortUpdate = true
	_, err = uc.Execute(context.Background(), usecase.UpdateLabelInput{LabelID: labels[0].ID, Name: "Newer"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), usecase.UpdateLabelInput{LabelID: 0, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestDeleteLabels_DetachesFromBoards(t *testing.T) {
	// Setup
	f := newFixture(t)
	boards := f.activeBoards("A", "B")
	labels := f.labels("L1", "L2")
	f.store.Attach(boards[0].ID, labels[0].ID, labels[1].ID)
	f.store.Attach(boards[1].ID, labels[0].ID)
	uc := usecase.NewDeleteLabels(f.store.Labels, f.locker, f.logger)

	// Execute
	out, err := uc.Execute(context.Background(), usecase.DeleteLabelsInput{LabelIDs: []int{labels[0].ID}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{labels[0].ID}, out.Removed)
	assert.Equal(t, []int{labels[1].ID}, f.store.LabelIDsOf(boards[0].ID))
	assert.Empty(t, f.store.LabelIDsOf(boards[1].ID))
	assert.Len(t, f.store.Boards.Items, 2)
}

func TestDeleteLabels_Errors(t *testing.T) {
	f := newFixture(t)
	labels := f.labels("L1")
	uc := usecase.NewDeleteLabels(f.store.Labels, f.locker, nil)

	_, err := uc.Execute(context.Background(), usecase.DeleteLabelsInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = uc.Execute(context.Background(), usecase.DeleteLabelsInput{LabelIDs: []int{labels[0].ID, 50}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetLabel_Execute(t *testing.T) {
	f := newFixture(t)
	labels := f.labels("L1")
	uc := usecase.NewGetLabel(f.store.Labels)

	out, err := uc.Execute(context.Background(), usecase.GetLabelInput{LabelID: labels[0].ID})
	require.NoError(t, err)
	assert.Equal(t, "L1", out.Label.Name)

	_, err = uc.Execute(context.Background(), usecase.GetLabelInput{LabelID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLabels_Execute(t *testing.T) {
	f := newFixture(t)
	f.labels("work", "Éclair", "home")
	uc := usecase.NewListLabels(f.store.Labels, nil)

	out, err := uc.Execute(context.Background(), usecase.ListLabelsInput{})
	require.NoError(t, err)
	names := make([]string, len(out.Labels))
	for i, l := range out.Labels {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"Éclair", "home", "work"}, names)

	out, err = uc.Execute(context.Background(), usecase.ListLabelsInput{Query: "ECL"})
	require.NoError(t, err)
	require.Len(t, out.Labels, 1)
	assert.Equal(t, "Éclair", out.Labels[0].Name)
}
