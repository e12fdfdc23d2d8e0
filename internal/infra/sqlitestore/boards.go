package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure BoardRepository implements domain.BoardRepository.
var _ domain.BoardRepository = (*BoardRepository)(nil)

// BoardRepository stores boards in the boards table.
type BoardRepository struct {
	s *Store
}

const boardColumns = `id, name, normalized_name, state, position, trash_position, created_at, archived_at, removed_at`

func scanBoard(sc scanner) (*domain.Board, error) {
	var (
		b                     domain.Board
		state                 string
		position, trashPos    sql.NullInt64
		created               int64
		archivedAt, removedAt sql.NullInt64
	)
	if err := sc.Scan(&b.ID, &b.Name, &b.NormalizedName, &state, &position, &trashPos,
		&created, &archivedAt, &removedAt); err != nil {
		return nil, err
	}
	b.State = domain.BoardState(state)
	b.Position = fromNullInt(position)
	b.TrashPosition = fromNullInt(trashPos)
	b.CreatedAt = fromMillis(created)
	b.ArchivedAt = fromNullMillis(archivedAt)
	b.RemovedAt = fromNullMillis(removedAt)
	return &b, nil
}

// Create inserts a board and returns its new ID.
func (r *BoardRepository) Create(ctx context.Context, board *domain.Board) (int, error) {
	id, err := r.s.insert(ctx,
		`INSERT INTO boards (name, normalized_name, state, position, trash_position, created_at, archived_at, removed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		board.Name, board.NormalizedName, string(board.State), nullInt(board.Position), nullInt(board.TrashPosition),
		toMillis(board.CreatedAt), nullMillis(board.ArchivedAt), nullMillis(board.RemovedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert board: %w", err)
	}
	r.s.notify(1, domain.TopicBoards)
	return id, nil
}

// FindByState returns boards in state ordered by lane position, then id.
// Boards without a lane position come last.
func (r *BoardRepository) FindByState(ctx context.Context, state domain.BoardState) ([]*domain.Board, error) {
	return queryAll(ctx, r.s.db, scanBoard,
		`SELECT `+boardColumns+` FROM boards WHERE state = ?
		 ORDER BY COALESCE(position, trash_position) IS NULL, COALESCE(position, trash_position), id`,
		string(state),
	)
}

// FindOne retrieves a board by ID. Returns nil if not found.
func (r *BoardRepository) FindOne(ctx context.Context, id int) (*domain.Board, error) {
	return queryOne(ctx, r.s.db, scanBoard, `SELECT `+boardColumns+` FROM boards WHERE id = ?`, id)
}

// Update writes boards in one transaction, or none of them if one is missing.
func (r *BoardRepository) Update(ctx context.Context, boards ...*domain.Board) (int, error) {
	args := make([][]any, len(boards))
	for i, b := range boards {
		args[i] = []any{
			b.Name, b.NormalizedName, string(b.State), nullInt(b.Position), nullInt(b.TrashPosition),
			nullMillis(b.ArchivedAt), nullMillis(b.RemovedAt), b.ID,
		}
	}
	n, err := r.s.updateEach(ctx,
		`UPDATE boards SET name = ?, normalized_name = ?, state = ?, position = ?, trash_position = ?,
		 archived_at = ?, removed_at = ? WHERE id = ?`, args)
	if err != nil {
		return 0, fmt.Errorf("update boards: %w", err)
	}
	r.s.notify(n, domain.TopicBoards)
	return n, nil
}

// Remove deletes boards along with their tasks, subtasks and refs.
func (r *BoardRepository) Remove(ctx context.Context, ids ...int) (int, error) {
	n, err := r.s.removeIDs(ctx, "boards", ids)
	if err != nil {
		return 0, fmt.Errorf("remove boards: %w", err)
	}
	r.s.notify(n, domain.TopicBoards, domain.TopicRefs, domain.TopicTasks, domain.TopicSubtasks)
	return n, nil
}
