package usecase

import (
	"context"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// Snapshot is one emission of a streaming read.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// watch emits load's result once and again after every change on topics.
// Changes that arrive while a load is pending are coalesced into one reload.
// The returned channel is closed when ctx is done. With a nil feed it emits
// once and closes.
func watch[T any](
	ctx context.Context,
	feed domain.ChangeFeed,
	topics []domain.Topic,
	load func(context.Context) (T, error),
) <-chan Snapshot[T] {
	out := make(chan Snapshot[T], 1)

	var changes <-chan domain.Change
	if feed != nil {
		changes = feed.Subscribe(ctx, topics...)
	}

	go func() {
		defer close(out)
		for {
			v, err := load(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case out <- Snapshot[T]{Value: v, Err: err}:
			case <-ctx.Done():
				return
			}
			if changes == nil {
				return
			}

			select {
			case _, ok := <-changes:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
			drain(changes)
		}
	}()
	return out
}

// drain discards changes that are already queued.
func drain(changes <-chan domain.Change) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
