// Package events provides the in-process change feed that drives watch streams.
package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// DefaultBufferSize is the per-subscriber queue length.
const DefaultBufferSize = 16

// Ensure Broker implements domain.ChangeFeed and domain.ChangePublisher.
var (
	_ domain.ChangeFeed      = (*Broker)(nil)
	_ domain.ChangePublisher = (*Broker)(nil)
)

// subscriber is one watcher's queue and topic filter.
type subscriber struct {
	ch     chan domain.Change
	topics map[domain.Topic]bool // Empty = all topics
}

func (s *subscriber) wants(topic domain.Topic) bool {
	return len(s.topics) == 0 || s.topics[topic]
}

// Broker fans published changes out to subscribers.
// Sends never block: a subscriber whose queue is full misses the change,
// which is harmless because watchers re-read on any pending notification.
// Fields are ordered to minimize memory padding.
type Broker struct {
	clock      domain.Clock
	log        *slog.Logger
	subs       map[*subscriber]struct{}
	sequence   atomic.Int64
	bufferSize int
	mu         sync.RWMutex
}

// NewBroker creates a Broker. A non-positive bufferSize uses DefaultBufferSize.
func NewBroker(bufferSize int, clock domain.Clock, log *slog.Logger) *Broker {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Broker{
		clock:      clock,
		log:        log,
		subs:       make(map[*subscriber]struct{}),
		bufferSize: bufferSize,
	}
}

// Subscribe registers a watcher for topics (none = all).
// The returned channel is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context, topics ...domain.Topic) <-chan domain.Change {
	sub := &subscriber{
		ch:     make(chan domain.Change, b.bufferSize),
		topics: make(map[domain.Topic]bool, len(topics)),
	}
	for _, t := range topics {
		sub.topics[t] = true
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, sub)
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch
}

// Publish announces a write to topic.
func (b *Broker) Publish(topic domain.Topic) {
	change := domain.Change{
		Time:     b.clock.Now(),
		Topic:    topic,
		Sequence: b.sequence.Add(1),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if !sub.wants(topic) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			b.log.Debug("change dropped, subscriber queue full",
				"topic", string(topic), "sequence", change.Sequence)
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
