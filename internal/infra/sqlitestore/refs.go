package sqlitestore

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure RefRepository implements domain.BoardLabelRefRepository.
var _ domain.BoardLabelRefRepository = (*RefRepository)(nil)

// RefRepository stores board-label pairs in the board_labels table.
type RefRepository struct {
	s *Store
}

func scanRef(sc scanner) (domain.BoardLabelRef, error) {
	var ref domain.BoardLabelRef
	err := sc.Scan(&ref.BoardID, &ref.LabelID)
	return ref, err
}

func refArgs(refs []domain.BoardLabelRef) [][]any {
	args := make([][]any, len(refs))
	for i, ref := range refs {
		args[i] = []any{ref.BoardID, ref.LabelID}
	}
	return args
}

// Create inserts refs. Existing pairs are left as they are.
func (r *RefRepository) Create(ctx context.Context, refs ...domain.BoardLabelRef) error {
	n, err := r.s.execEach(ctx,
		`INSERT INTO board_labels (board_id, label_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		refArgs(refs))
	if isForeignKeyViolation(err) {
		return domain.NotFound("insert refs", "board or label", 0)
	}
	if err != nil {
		return fmt.Errorf("insert refs: %w", err)
	}
	r.s.notify(n, domain.TopicRefs)
	return nil
}

// FindAllByBoard returns the refs of one board ordered by label id.
func (r *RefRepository) FindAllByBoard(ctx context.Context, boardID int) ([]domain.BoardLabelRef, error) {
	return queryAll(ctx, r.s.db, scanRef,
		`SELECT board_id, label_id FROM board_labels WHERE board_id = ? ORDER BY label_id`, boardID)
}

func (r *RefRepository) Remove(ctx context.Context, refs ...domain.BoardLabelRef) (int, error) {
	n, err := r.s.execEach(ctx,
		`DELETE FROM board_labels WHERE board_id = ? AND label_id = ?`, refArgs(refs))
	if err != nil {
		return 0, fmt.Errorf("remove refs: %w", err)
	}
	r.s.notify(n, domain.TopicRefs)
	return n, nil
}
