package shared

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// GetBoard retrieves a board by ID and returns domain.ErrNotFound if not found.
// This centralizes the common pattern of:
//
//	board, err := repo.FindOne(ctx, id)
//	if err != nil { return nil, fmt.Errorf("get board: %w", err) }
//	if board == nil { return nil, domain.NotFound(op, "board", id) }
func GetBoard(ctx context.Context, repo domain.BoardRepository, op string, id int) (*domain.Board, error) {
	board, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	if board == nil {
		return nil, domain.NotFound(op, "board", id)
	}
	return board, nil
}

// GetLabel retrieves a label by ID and returns domain.ErrNotFound if not found.
func GetLabel(ctx context.Context, repo domain.LabelRepository, op string, id int) (*domain.Label, error) {
	label, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get label: %w", err)
	}
	if label == nil {
		return nil, domain.NotFound(op, "label", id)
	}
	return label, nil
}

// GetTask retrieves a task by ID and returns domain.ErrNotFound if not found.
func GetTask(ctx context.Context, repo domain.TaskRepository, op string, id int) (*domain.Task, error) {
	task, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.NotFound(op, "task", id)
	}
	return task, nil
}

// GetSubtask retrieves a subtask by ID and returns domain.ErrNotFound if not found.
func GetSubtask(ctx context.Context, repo domain.SubtaskRepository, op string, id int) (*domain.Subtask, error) {
	subtask, err := repo.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subtask: %w", err)
	}
	if subtask == nil {
		return nil, domain.NotFound(op, "subtask", id)
	}
	return subtask, nil
}

// RequireLabels checks that every label exists.
func RequireLabels(ctx context.Context, repo domain.LabelRepository, op string, ids []int) error {
	for _, id := range ids {
		if _, err := GetLabel(ctx, repo, op, id); err != nil {
			return err
		}
	}
	return nil
}

// LabelsOf resolves the labels attached to a board, ordered by name.
func LabelsOf(ctx context.Context, refs domain.BoardLabelRefRepository, labels domain.LabelRepository, boardID int) ([]*domain.Label, error) {
	rows, err := refs.FindAllByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("find board labels: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	all, err := labels.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find labels: %w", err)
	}
	attached := make(map[int]bool, len(rows))
	for _, r := range rows {
		attached[r.LabelID] = true
	}
	var out []*domain.Label
	for _, l := range all {
		if attached[l.ID] {
			out = append(out, l)
		}
	}
	return domain.Sort(out, domain.SortNameAsc), nil
}
