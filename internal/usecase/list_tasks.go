package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing a board's tasks.
type ListTasksInput struct {
	ShowCompleted *bool          // Include the completed lane (default: [tasks] show_completed)
	Sort          domain.SortKey // Sort key (default: [tasks] sort_order)
	Query         string         // Name substring filter
	BoardID       int            // Owning board
}

// ListTasksOutput contains a board's tasks split by lane.
type ListTasksOutput struct {
	Open      []*domain.Task
	Completed []*domain.Task // Nil when the completed lane is hidden
	Sort      domain.SortKey
}

// ListTasks is the use case for listing the tasks of a board.
type ListTasks struct {
	boards   domain.BoardRepository
	tasks    domain.TaskRepository
	feed     domain.ChangeFeed
	settings *domain.Settings
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(boards domain.BoardRepository, tasks domain.TaskRepository, feed domain.ChangeFeed, settings *domain.Settings) *ListTasks {
	if settings == nil {
		settings = domain.NewDefaultSettings()
	}
	return &ListTasks{
		boards:   boards,
		tasks:    tasks,
		feed:     feed,
		settings: settings,
	}
}

// Execute returns the filtered and sorted tasks of each lane.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	in, err := uc.normalize(in)
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, in)
}

// Watch streams the listing, re-reading it after every task change.
func (uc *ListTasks) Watch(ctx context.Context, in ListTasksInput) (<-chan Snapshot[*ListTasksOutput], error) {
	in, err := uc.normalize(in)
	if err != nil {
		return nil, err
	}
	topics := []domain.Topic{domain.TopicTasks, domain.TopicBoards}
	return watch(ctx, uc.feed, topics, func(ctx context.Context) (*ListTasksOutput, error) {
		return uc.load(ctx, in)
	}), nil
}

func (uc *ListTasks) normalize(in ListTasksInput) (ListTasksInput, error) {
	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return in, err
	}
	if in.Sort == "" {
		in.Sort = uc.settings.Tasks.SortOrder
	}
	key, err := domain.ParseSortKey(string(in.Sort))
	if err != nil {
		return in, err
	}
	in.Sort = key
	if in.ShowCompleted == nil {
		show := uc.settings.Tasks.ShowCompleted
		in.ShowCompleted = &show
	}
	return in, nil
}

func (uc *ListTasks) load(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := shared.GetBoard(ctx, uc.boards, "list tasks", in.BoardID); err != nil {
		return nil, err
	}
	open, completed, err := taskLanes(ctx, uc.tasks, in.BoardID)
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{
		Open: domain.Sort(domain.FilterByQuery(open, in.Query), in.Sort),
		Sort: in.Sort,
	}
	if *in.ShowCompleted {
		out.Completed = domain.Sort(domain.FilterByQuery(completed, in.Query), in.Sort)
	}
	return out, nil
}
