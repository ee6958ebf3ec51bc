package lease

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is an in-process lease with the same contract as RedisLocker.
// It backs unit tests and single-instance deployments.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// NewMemoryLockerWithClock lets tests control lease expiry.
func NewMemoryLockerWithClock(clock func() time.Time) *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]time.Time),
		clock: clock,
	}
}

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)
	return true, nil
}

func (l *MemoryLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
	return nil
}
