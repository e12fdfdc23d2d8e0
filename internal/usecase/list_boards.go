package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// ListBoardsInput contains the parameters for listing boards.
type ListBoardsInput struct {
	State    domain.BoardState // Lane to list (default: active)
	Sort     domain.SortKey    // Sort key (default: [boards] sort_order)
	Query    string            // Name substring filter
	LabelIDs []int             // Boards with any of these labels
}

// ListBoardsOutput contains the listed boards.
type ListBoardsOutput struct {
	Boards     []*domain.BoardWithLabels
	Sort       domain.SortKey // The sort key that was applied
	GridLayout bool           // Layout preference, passed through for the caller
}

// ListBoards is the use case for listing boards of one state.
type ListBoards struct {
	boards   domain.BoardRepository
	labels   domain.LabelRepository
	refs     domain.BoardLabelRefRepository
	feed     domain.ChangeFeed
	settings *domain.Settings
}

// NewListBoards creates a new ListBoards use case.
// feed may be nil, in which case Watch emits a single snapshot.
func NewListBoards(
	boards domain.BoardRepository,
	labels domain.LabelRepository,
	refs domain.BoardLabelRefRepository,
	feed domain.ChangeFeed,
	settings *domain.Settings,
) *ListBoards {
	if settings == nil {
		settings = domain.NewDefaultSettings()
	}
	return &ListBoards{
		boards:   boards,
		labels:   labels,
		refs:     refs,
		feed:     feed,
		settings: settings,
	}
}

// Execute returns the filtered and sorted boards.
func (uc *ListBoards) Execute(ctx context.Context, in ListBoardsInput) (*ListBoardsOutput, error) {
	in, err := uc.normalize(in)
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, in)
}

// Watch streams the listing, re-reading it after every board, label or ref change.
func (uc *ListBoards) Watch(ctx context.Context, in ListBoardsInput) (<-chan Snapshot[*ListBoardsOutput], error) {
	in, err := uc.normalize(in)
	if err != nil {
		return nil, err
	}
	topics := []domain.Topic{domain.TopicBoards, domain.TopicLabels, domain.TopicRefs}
	return watch(ctx, uc.feed, topics, func(ctx context.Context) (*ListBoardsOutput, error) {
		return uc.load(ctx, in)
	}), nil
}

func (uc *ListBoards) normalize(in ListBoardsInput) (ListBoardsInput, error) {
	if in.State == "" {
		in.State = domain.BoardActive
	}
	if !in.State.IsValid() {
		return in, domain.InvalidState("list boards", fmt.Sprintf("unknown state %q", in.State))
	}
	if in.Sort == "" {
		in.Sort = uc.settings.Boards.SortOrder
	}
	key, err := domain.ParseSortKey(string(in.Sort))
	if err != nil {
		return in, err
	}
	in.Sort = key
	if err := domain.RequirePositiveIDs("label", in.LabelIDs); err != nil {
		return in, err
	}
	return in, nil
}

func (uc *ListBoards) load(ctx context.Context, in ListBoardsInput) (*ListBoardsOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	boards, err := loadBoardsWithLabels(ctx, uc.boards, uc.labels, uc.refs, in.State)
	if err != nil {
		return nil, err
	}
	filter := domain.BoardFilter{Query: in.Query, LabelIDs: in.LabelIDs}
	return &ListBoardsOutput{
		Boards:     domain.SortFilterBoards(boards, filter, in.Sort),
		Sort:       in.Sort,
		GridLayout: uc.settings.Boards.GridLayout,
	}, nil
}

// loadBoardsWithLabels reads the boards of one state and attaches their labels.
func loadBoardsWithLabels(
	ctx context.Context,
	boardRepo domain.BoardRepository,
	labelRepo domain.LabelRepository,
	refRepo domain.BoardLabelRefRepository,
	state domain.BoardState,
) ([]*domain.BoardWithLabels, error) {
	boards, err := boardRepo.FindByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("find %s boards: %w", state, err)
	}
	labels, err := labelRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find labels: %w", err)
	}
	byID := make(map[int]*domain.Label, len(labels))
	for _, l := range labels {
		byID[l.ID] = l
	}

	out := make([]*domain.BoardWithLabels, 0, len(boards))
	for _, b := range boards {
		refs, err := refRepo.FindAllByBoard(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("find board labels: %w", err)
		}
		bl := &domain.BoardWithLabels{Board: b}
		for _, r := range refs {
			if l, ok := byID[r.LabelID]; ok {
				bl.Labels = append(bl.Labels, l)
			}
		}
		bl.Labels = domain.Sort(bl.Labels, domain.SortNameAsc)
		out = append(out, bl)
	}
	return out, nil
}
