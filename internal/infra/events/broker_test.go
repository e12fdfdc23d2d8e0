package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(bufferSize int) *Broker {
	return NewBroker(bufferSize, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func receive(t *testing.T, ch <-chan domain.Change) domain.Change {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "channel closed")
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
		return domain.Change{}
	}
}

func TestBroker_PublishFiltersTopics(t *testing.T) {
	// Setup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker := newTestBroker(4)
	boards := broker.Subscribe(ctx, domain.TopicBoards, domain.TopicRefs)
	all := broker.Subscribe(ctx)

	// Execute
	broker.Publish(domain.TopicTasks)
	broker.Publish(domain.TopicBoards)

	// Assert
	got := receive(t, boards)
	assert.Equal(t, domain.TopicBoards, got.Topic)
	assert.Equal(t, int64(2), got.Sequence)
	assert.Empty(t, boards)

	first := receive(t, all)
	second := receive(t, all)
	assert.Equal(t, domain.TopicTasks, first.Topic)
	assert.Less(t, first.Sequence, second.Sequence)
}

func TestBroker_FullQueueDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker := newTestBroker(1)
	ch := broker.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		for range 5 {
			broker.Publish(domain.TopicLabels)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full queue")
	}
	assert.Equal(t, int64(1), receive(t, ch).Sequence)
	assert.Empty(t, ch)
}

func TestBroker_CancelClosesChannel(t *testing.T) {
	// Setup
	ctx, cancel := context.WithCancel(context.Background())
	broker := newTestBroker(0)
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.Subscribers())

	// Execute
	cancel()

	// Assert
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	assert.Eventually(t, func() bool { return broker.Subscribers() == 0 }, time.Second, 10*time.Millisecond)

	// Publishing after unsubscribe is safe
	broker.Publish(domain.TopicBoards)
}
