package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
	"golang.org/x/sync/errgroup"
)

// exportConcurrency bounds the number of boards loaded at once.
const exportConcurrency = 4

// ExportBoardsInput contains the parameters for exporting boards.
type ExportBoardsInput struct {
	Out    io.Writer           // Destination of the encoded snapshots
	States []domain.BoardState // States to export (default: all)
}

// ExportBoardsOutput contains the result of an export.
type ExportBoardsOutput struct {
	Boards int // Number of boards written
	Tasks  int // Number of tasks written
}

// ExportBoards is the use case for writing boards with everything they own.
// Fields are ordered to minimize memory padding.
type ExportBoards struct {
	boards   domain.BoardRepository
	labels   domain.LabelRepository
	refs     domain.BoardLabelRefRepository
	tasks    domain.TaskRepository
	subtasks domain.SubtaskRepository
	writer   domain.SnapshotWriter
}

// NewExportBoards creates a new ExportBoards use case.
func NewExportBoards(
	boards domain.BoardRepository,
	labels domain.LabelRepository,
	refs domain.BoardLabelRefRepository,
	tasks domain.TaskRepository,
	subtasks domain.SubtaskRepository,
	writer domain.SnapshotWriter,
) *ExportBoards {
	return &ExportBoards{
		boards:   boards,
		labels:   labels,
		refs:     refs,
		tasks:    tasks,
		subtasks: subtasks,
		writer:   writer,
	}
}

// Execute loads a snapshot of every selected board and writes them in lane order.
func (uc *ExportBoards) Execute(ctx context.Context, in ExportBoardsInput) (*ExportBoardsOutput, error) {
	if in.Out == nil {
		return nil, domain.InvalidState("export boards", "no output")
	}
	states := in.States
	if len(states) == 0 {
		states = domain.AllBoardStates()
	}
	for _, s := range states {
		if !s.IsValid() {
			return nil, domain.InvalidState("export boards", fmt.Sprintf("unknown state %q", s))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var boards []*domain.Board
	for _, s := range states {
		found, err := uc.boards.FindByState(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("find %s boards: %w", s, err)
		}
		boards = append(boards, shared.OrderLane(found)...)
	}

	snapshots := make([]domain.BoardSnapshot, len(boards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, b := range boards {
		g.Go(func() error {
			snap, err := uc.snapshot(gctx, b)
			if err != nil {
				return err
			}
			snapshots[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := uc.writer.WriteSnapshots(in.Out, snapshots); err != nil {
		return nil, fmt.Errorf("write snapshots: %w", err)
	}

	out := &ExportBoardsOutput{Boards: len(snapshots)}
	for _, s := range snapshots {
		out.Tasks += len(s.Tasks)
	}
	return out, nil
}

func (uc *ExportBoards) snapshot(ctx context.Context, board *domain.Board) (domain.BoardSnapshot, error) {
	labels, err := shared.LabelsOf(ctx, uc.refs, uc.labels, board.ID)
	if err != nil {
		return domain.BoardSnapshot{}, err
	}
	tasks, err := uc.tasks.FindByBoard(ctx, board.ID)
	if err != nil {
		return domain.BoardSnapshot{}, fmt.Errorf("find tasks: %w", err)
	}
	open, completed := shared.SplitLanes(tasks)

	snap := domain.BoardSnapshot{
		Board:    board,
		Labels:   labels,
		Tasks:    append(open, completed...),
		Subtasks: make(map[int][]*domain.Subtask),
	}
	for _, t := range snap.Tasks {
		subtasks, err := uc.subtasks.FindByTask(ctx, t.ID)
		if err != nil {
			return domain.BoardSnapshot{}, fmt.Errorf("find subtasks: %w", err)
		}
		if len(subtasks) > 0 {
			so, sc := shared.SplitLanes(subtasks)
			snap.Subtasks[t.ID] = append(so, sc...)
		}
	}
	return snap, nil
}
