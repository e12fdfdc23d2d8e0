package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure TaskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks in the tasks table.
// Dates are TEXT "2006-01-02" and times TEXT "15:04".
type TaskRepository struct {
	s *Store
}

const taskColumns = `id, board_id, name, normalized_name, completed, position, completed_position,
	priority, date, time, created_at, completed_at`

func scanTask(sc scanner) (*domain.Task, error) {
	var (
		t                      domain.Task
		position, completedPos sql.NullInt64
		priority               sql.NullInt64
		date, tod              sql.NullString
		created                int64
		completedAt            sql.NullInt64
	)
	if err := sc.Scan(&t.ID, &t.BoardID, &t.Name, &t.NormalizedName, &t.Completed, &position, &completedPos,
		&priority, &date, &tod, &created, &completedAt); err != nil {
		return nil, err
	}
	t.Position = fromNullInt(position)
	t.CompletedPosition = fromNullInt(completedPos)
	if priority.Valid {
		p := domain.Priority(priority.Int64)
		t.Priority = &p
	}
	if date.Valid {
		d, err := domain.ParseDate(date.String)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", t.ID, err)
		}
		t.Date = &d
	}
	if tod.Valid {
		v, err := domain.ParseTimeOfDay(tod.String)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", t.ID, err)
		}
		t.Time = &v
	}
	t.CreatedAt = fromMillis(created)
	t.CompletedAt = fromNullMillis(completedAt)
	return &t, nil
}

// taskValues returns the mutable columns in the order of the UPDATE statement.
func taskValues(t *domain.Task) []any {
	var priority, date, tod any
	if t.Priority != nil {
		priority = int64(*t.Priority)
	}
	if t.Date != nil {
		date = t.Date.Format(domain.DateLayout)
	}
	if t.Time != nil {
		tod = t.Time.String()
	}
	return []any{
		t.Name, t.NormalizedName, t.Completed, nullInt(t.Position), nullInt(t.CompletedPosition),
		priority, date, tod, nullMillis(t.CompletedAt),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int, error) {
	args := append([]any{task.BoardID, toMillis(task.CreatedAt)}, taskValues(task)...)
	id, err := r.s.insert(ctx,
		`INSERT INTO tasks (board_id, created_at, name, normalized_name, completed, position, completed_position,
		 priority, date, time, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...)
	if isForeignKeyViolation(err) {
		return 0, domain.NotFound("insert task", "board", task.BoardID)
	}
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	r.s.notify(1, domain.TopicTasks)
	return id, nil
}

// FindByBoard returns the tasks of one board ordered by id.
func (r *TaskRepository) FindByBoard(ctx context.Context, boardID int) ([]*domain.Task, error) {
	return queryAll(ctx, r.s.db, scanTask, `SELECT `+taskColumns+` FROM tasks WHERE board_id = ? ORDER BY id`, boardID)
}

func (r *TaskRepository) FindOne(ctx context.Context, id int) (*domain.Task, error) {
	return queryOne(ctx, r.s.db, scanTask, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
}

func (r *TaskRepository) Update(ctx context.Context, tasks ...*domain.Task) (int, error) {
	args := make([][]any, len(tasks))
	for i, t := range tasks {
		args[i] = append(taskValues(t), t.ID)
	}
	n, err := r.s.updateEach(ctx,
		`UPDATE tasks SET name = ?, normalized_name = ?, completed = ?, position = ?, completed_position = ?,
		 priority = ?, date = ?, time = ?, completed_at = ? WHERE id = ?`, args)
	if err != nil {
		return 0, fmt.Errorf("update tasks: %w", err)
	}
	r.s.notify(n, domain.TopicTasks)
	return n, nil
}

// Remove deletes tasks along with their subtasks.
func (r *TaskRepository) Remove(ctx context.Context, ids ...int) (int, error) {
	n, err := r.s.removeIDs(ctx, "tasks", ids)
	if err != nil {
		return 0, fmt.Errorf("remove tasks: %w", err)
	}
	r.s.notify(n, domain.TopicTasks, domain.TopicSubtasks)
	return n, nil
}
