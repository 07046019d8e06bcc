package lock

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLocker serializes commands per account within one process.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewMemoryLocker creates an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]chan struct{})}
}

func (l *MemoryLocker) slot(accountID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[accountID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[accountID] = ch
	}
	return ch
}

// Lock implements services.AccountLocker.
func (l *MemoryLocker) Lock(ctx context.Context, accountID string) (func(context.Context) error, error) {
	ch := l.slot(accountID)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func(context.Context) error {
			once.Do(func() { <-ch })
			return nil
		}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for lock on account %s: %w", accountID, ctx.Err())
	}
}
