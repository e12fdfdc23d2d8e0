package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure SubtaskRepository implements domain.SubtaskRepository.
var _ domain.SubtaskRepository = (*SubtaskRepository)(nil)

// SubtaskRepository stores subtasks in the subtasks table.
type SubtaskRepository struct {
	s *Store
}

const subtaskColumns = `id, task_id, name, normalized_name, completed, position, completed_position, created_at`

func scanSubtask(sc scanner) (*domain.Subtask, error) {
	var (
		st                     domain.Subtask
		position, completedPos sql.NullInt64
		created                int64
	)
	if err := sc.Scan(&st.ID, &st.TaskID, &st.Name, &st.NormalizedName, &st.Completed,
		&position, &completedPos, &created); err != nil {
		return nil, err
	}
	st.Position = fromNullInt(position)
	st.CompletedPosition = fromNullInt(completedPos)
	st.CreatedAt = fromMillis(created)
	return &st, nil
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *domain.Subtask) (int, error) {
	id, err := r.s.insert(ctx,
		`INSERT INTO subtasks (task_id, name, normalized_name, completed, position, completed_position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		subtask.TaskID, subtask.Name, subtask.NormalizedName, subtask.Completed,
		nullInt(subtask.Position), nullInt(subtask.CompletedPosition), toMillis(subtask.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return 0, domain.NotFound("insert subtask", "task", subtask.TaskID)
	}
	if err != nil {
		return 0, fmt.Errorf("insert subtask: %w", err)
	}
	r.s.notify(1, domain.TopicSubtasks)
	return id, nil
}

// FindByTask returns the subtasks of one task ordered by id.
func (r *SubtaskRepository) FindByTask(ctx context.Context, taskID int) ([]*domain.Subtask, error) {
	return queryAll(ctx, r.s.db, scanSubtask,
		`SELECT `+subtaskColumns+` FROM subtasks WHERE task_id = ? ORDER BY id`, taskID)
}

func (r *SubtaskRepository) FindOne(ctx context.Context, id int) (*domain.Subtask, error) {
	return queryOne(ctx, r.s.db, scanSubtask, `SELECT `+subtaskColumns+` FROM subtasks WHERE id = ?`, id)
}

func (r *SubtaskRepository) Update(ctx context.Context, subtasks ...*domain.Subtask) (int, error) {
	args := make([][]any, len(subtasks))
	for i, st := range subtasks {
		args[i] = []any{st.Name, st.NormalizedName, st.Completed,
			nullInt(st.Position), nullInt(st.CompletedPosition), st.ID}
	}
	n, err := r.s.updateEach(ctx,
		`UPDATE subtasks SET name = ?, normalized_name = ?, completed = ?, position = ?, completed_position = ?
		 WHERE id = ?`, args)
	if err != nil {
		return 0, fmt.Errorf("update subtasks: %w", err)
	}
	r.s.notify(n, domain.TopicSubtasks)
	return n, nil
}

func (r *SubtaskRepository) Remove(ctx context.Context, ids ...int) (int, error) {
	n, err := r.s.removeIDs(ctx, "subtasks", ids)
	if err != nil {
		return 0, fmt.Errorf("remove subtasks: %w", err)
	}
	r.s.notify(n, domain.TopicSubtasks)
	return n, nil
}
