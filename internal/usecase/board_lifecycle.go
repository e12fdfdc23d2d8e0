// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// lock checks for cancellation and then acquires the given scopes.
func lock(ctx context.Context, locker *shared.Locker, keys ...string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return locker.Lock(ctx, keys...)
}

// boardLanes moves boards between lifecycle states and keeps the active and
// trash lanes contiguous. Callers must hold domain.BoardsLockKey.
type boardLanes struct {
	boards domain.BoardRepository
	clock  domain.Clock
}

// transition applies a lifecycle change to board and returns the siblings
// whose positions changed. A board leaving a lane closes its gap, and a board
// entering a lane is placed first. Nothing is persisted.
func (l *boardLanes) transition(
	ctx context.Context,
	board *domain.Board,
	apply func(b *domain.Board, now time.Time) error,
) ([]*domain.Board, error) {
	source := board.State
	if err := apply(board, l.clock.Now()); err != nil {
		return nil, err
	}
	target := board.State
	if source == target {
		return nil, nil
	}

	var changed []*domain.Board
	if hasLane(source) {
		siblings, err := l.lane(ctx, source, board.ID)
		if err != nil {
			return nil, err
		}
		changed = append(changed, shared.ReindexLane(siblings)...)
	}
	if hasLane(target) {
		siblings, err := l.lane(ctx, target, board.ID)
		if err != nil {
			return nil, err
		}
		changed = append(changed, shared.ReindexLane(shared.InsertAt(siblings, 0, board))...)
	}
	return shared.Without(changed, board.ID), nil
}

// lane returns the boards in state ordered by lane position, minus exclude.
func (l *boardLanes) lane(ctx context.Context, state domain.BoardState, exclude int) ([]*domain.Board, error) {
	boards, err := l.boards.FindByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("find %s boards: %w", state, err)
	}
	return shared.OrderLane(shared.Without(boards, exclude)), nil
}

// persist writes board and its reindexed siblings in one update. If any row
// is missing nothing is written.
func (l *boardLanes) persist(ctx context.Context, op string, board *domain.Board, siblings []*domain.Board) error {
	return shared.PersistMoved(ctx, op, "board", l.boards.Update, board, siblings...)
}

// closeGaps reindexes a lane after boards were removed from it.
func (l *boardLanes) closeGaps(ctx context.Context, op string, state domain.BoardState) error {
	siblings, err := l.lane(ctx, state, 0)
	if err != nil {
		return err
	}
	return shared.Persist(ctx, op, "board", l.boards.Update, shared.ReindexLane(siblings)...)
}

func hasLane(state domain.BoardState) bool {
	return state == domain.BoardActive || state == domain.BoardDeleted
}

// BoardTransitionInput contains the parameters for a single board state change.
type BoardTransitionInput struct {
	BoardID int // Board to transition
}

// BoardTransitionOutput contains the result of a board state change.
type BoardTransitionOutput struct {
	Board    *domain.Board // The board after the change
	Previous *domain.Board // The board before the change, for undo
}

// boardTransition is the shared body of the archive, unarchive, trash and restore use cases.
type boardTransition struct {
	lanes  boardLanes
	locker *shared.Locker
	logger domain.Logger
	apply  func(b *domain.Board, now time.Time) error
	op     string
}

func newBoardTransition(
	op string,
	boards domain.BoardRepository,
	locker *shared.Locker,
	clock domain.Clock,
	logger domain.Logger,
	apply func(b *domain.Board, now time.Time) error,
) boardTransition {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return boardTransition{
		lanes:  boardLanes{boards: boards, clock: clock},
		locker: locker,
		logger: logger,
		apply:  apply,
		op:     op,
	}
}

func (t *boardTransition) execute(ctx context.Context, in BoardTransitionInput) (*BoardTransitionOutput, error) {
	if err := domain.RequirePositiveID("board", in.BoardID); err != nil {
		return nil, err
	}

	unlock, err := lock(ctx, t.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	board, err := shared.GetBoard(ctx, t.lanes.boards, t.op, in.BoardID)
	if err != nil {
		return nil, err
	}
	previous := board.Clone()

	siblings, err := t.lanes.transition(ctx, board, t.apply)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.op, err)
	}
	if err := t.lanes.persist(ctx, t.op, board, siblings); err != nil {
		t.logger.Warn(board.ID, "lifecycle", err.Error())
		return nil, err
	}

	t.logger.Info(board.ID, "lifecycle", fmt.Sprintf("%s -> %s", previous.State, board.State))
	return &BoardTransitionOutput{Board: board, Previous: previous}, nil
}
