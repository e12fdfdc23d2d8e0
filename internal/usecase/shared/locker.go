package shared

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Locker serializes read-modify-write operations per logical parent.
// Keys name a scope such as domain.BoardsLockKey or domain.TaskLockKey(id).
type Locker struct {
	keys map[string]*keyLock
	mu   sync.Mutex
}

type keyLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{keys: make(map[string]*keyLock)}
}

// Lock acquires every key in sorted order and returns a function that
// releases them. It fails only if ctx is done before all keys are held,
// in which case nothing stays locked.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]string, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, key := range keys {
		kl := l.acquireRef(key)
		if err := kl.sem.Acquire(ctx, 1); err != nil {
			l.dropRef(key)
			release()
			return nil, err
		}
		held = append(held, key)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *Locker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.keys[key]
	if !ok {
		kl = &keyLock{sem: semaphore.NewWeighted(1)}
		l.keys[key] = kl
	}
	kl.refs++
	return kl
}

func (l *Locker) dropRef(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl := l.keys[key]
	kl.refs--
	if kl.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	kl := l.keys[key]
	l.mu.Unlock()
	kl.sem.Release(1)
	l.dropRef(key)
}

// held reports how many keys currently have waiters or holders.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
