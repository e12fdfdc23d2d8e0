package sqlitestore

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Ensure LabelRepository implements domain.LabelRepository.
var _ domain.LabelRepository = (*LabelRepository)(nil)

// LabelRepository stores labels in the labels table.
type LabelRepository struct {
	s *Store
}

const labelColumns = `id, name, normalized_name, created_at`

func scanLabel(sc scanner) (*domain.Label, error) {
	var (
		l       domain.Label
		created int64
	)
	if err := sc.Scan(&l.ID, &l.Name, &l.NormalizedName, &created); err != nil {
		return nil, err
	}
	l.CreatedAt = fromMillis(created)
	return &l, nil
}

func (r *LabelRepository) Create(ctx context.Context, label *domain.Label) (int, error) {
	id, err := r.s.insert(ctx,
		`INSERT INTO labels (name, normalized_name, created_at) VALUES (?, ?, ?)`,
		label.Name, label.NormalizedName, toMillis(label.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert label: %w", err)
	}
	r.s.notify(1, domain.TopicLabels)
	return id, nil
}

// FindAll returns every label ordered by normalized name, then id.
func (r *LabelRepository) FindAll(ctx context.Context) ([]*domain.Label, error) {
	return queryAll(ctx, r.s.db, scanLabel, `SELECT `+labelColumns+` FROM labels ORDER BY normalized_name, id`)
}

func (r *LabelRepository) FindOne(ctx context.Context, id int) (*domain.Label, error) {
	return queryOne(ctx, r.s.db, scanLabel, `SELECT `+labelColumns+` FROM labels WHERE id = ?`, id)
}

func (r *LabelRepository) Update(ctx context.Context, label *domain.Label) (int, error) {
	n, err := r.s.updateEach(ctx,
		`UPDATE labels SET name = ?, normalized_name = ? WHERE id = ?`,
		[][]any{{label.Name, label.NormalizedName, label.ID}})
	if err != nil {
		return 0, fmt.Errorf("update label: %w", err)
	}
	r.s.notify(n, domain.TopicLabels)
	return n, nil
}

// Remove deletes labels; their refs go with them.
func (r *LabelRepository) Remove(ctx context.Context, ids ...int) (int, error) {
	n, err := r.s.removeIDs(ctx, "labels", ids)
	if err != nil {
		return 0, fmt.Errorf("remove labels: %w", err)
	}
	r.s.notify(n, domain.TopicLabels, domain.TopicRefs)
	return n, nil
}
