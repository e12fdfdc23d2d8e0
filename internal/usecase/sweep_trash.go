package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/hamilton-i7/finito-sub001/internal/usecase/shared"
)

// SweepTrashInput contains the parameters for one retention sweep.
type SweepTrashInput struct{}

// SweepTrashOutput contains the result of one retention sweep.
type SweepTrashOutput struct {
	Candidates []int // Eligible boards, oldest removal first
	Removed    []int // Boards deleted in this batch
	Remaining  int   // Eligible boards left for later sweeps
}

// SweepTrash is the use case for permanently deleting boards that have
// stayed in the trash past the retention window.
type SweepTrash struct {
	boards   domain.BoardRepository
	locker   *shared.Locker
	clock    domain.Clock
	logger   domain.Logger
	settings *domain.Settings
}

// NewSweepTrash creates a new SweepTrash use case.
func NewSweepTrash(
	boards domain.BoardRepository,
	locker *shared.Locker,
	clock domain.Clock,
	logger domain.Logger,
	settings *domain.Settings,
) *SweepTrash {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	if settings == nil {
		settings = domain.NewDefaultSettings()
	}
	return &SweepTrash{
		boards:   boards,
		locker:   locker,
		clock:    clock,
		logger:   logger,
		settings: settings,
	}
}

// Execute deletes at most one batch of eligible boards, oldest first.
// Running it again after an interruption picks up the rest.
func (uc *SweepTrash) Execute(ctx context.Context, _ SweepTrashInput) (*SweepTrashOutput, error) {
	const op = "sweep trash"

	unlock, err := lock(ctx, uc.locker, domain.BoardsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()

	trashed, err := uc.boards.FindByState(ctx, domain.BoardDeleted)
	if err != nil {
		return nil, fmt.Errorf("find deleted boards: %w", err)
	}

	now := uc.clock.Now()
	retention := uc.settings.Retention()
	var eligible []*domain.Board
	for _, b := range trashed {
		if b.EligibleForSweep(now, retention) {
			eligible = append(eligible, b)
		}
	}
	slices.SortFunc(eligible, func(a, b *domain.Board) int {
		if c := a.RemovedAt.Compare(*b.RemovedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := &SweepTrashOutput{Candidates: make([]int, len(eligible))}
	for i, b := range eligible {
		out.Candidates[i] = b.ID
	}
	if len(eligible) == 0 {
		return out, nil
	}

	batch := out.Candidates[:min(len(out.Candidates), uc.settings.BatchSize())]
	if err := shared.RemoveAll(ctx, op, "board", uc.boards.Remove, batch...); err != nil {
		uc.logger.Warn(0, "sweep", err.Error())
		return nil, err
	}
	lanes := boardLanes{boards: uc.boards, clock: uc.clock}
	if err := lanes.closeGaps(ctx, op, domain.BoardDeleted); err != nil {
		return nil, err
	}

	out.Removed = slices.Clone(batch)
	out.Remaining = len(out.Candidates) - len(batch)
	for _, id := range out.Removed {
		uc.logger.Info(id, "sweep", "deleted forever after retention")
	}
	uc.logger.Info(0, "sweep", fmt.Sprintf("removed %d of %d eligible boards", len(out.Removed), len(out.Candidates)))
	return out, nil
}

// Sweeper runs SweepTrash on a fixed interval.
type Sweeper struct {
	sweep    *SweepTrash
	logger   domain.Logger
	onSweep  func(*SweepTrashOutput)
	interval time.Duration
}

// NewSweeper creates a Sweeper. A non-positive interval uses the settings value.
// onSweep, if not nil, is called after every successful sweep.
func NewSweeper(sweep *SweepTrash, interval time.Duration, onSweep func(*SweepTrashOutput)) *Sweeper {
	if interval <= 0 {
		interval = sweep.settings.SweepEvery()
	}
	return &Sweeper{
		sweep:    sweep,
		logger:   sweep.logger,
		onSweep:  onSweep,
		interval: interval,
	}
}

// Interval returns the time between sweeps.
func (s *Sweeper) Interval() time.Duration {
	return s.interval
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Sweep failures are logged and the loop continues.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx)

		select {
		case <-ctx.Done():
			// Context canceled is a normal exit
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	out, err := s.sweep.Execute(ctx, SweepTrashInput{})
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error(0, "sweep", err.Error())
		}
		return
	}
	if s.onSweep != nil {
		s.onSweep(out)
	}
}
