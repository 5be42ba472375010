package lock

import (
	"context"
	"sync"
)

// Local is an in-process Locker keyed by lock id. It serializes schedulers
// running inside the same binary (e.g. the embedded scheduler and a manual
// one-shot cycle).
type Local struct {
	mu      sync.Mutex
	mutexes map[int64]*sync.Mutex
}

var _ Locker = (*Local)(nil)

func NewLocal() *Local {
	return &Local{mutexes: make(map[int64]*sync.Mutex)}
}

func (l *Local) TryAcquire(_ context.Context, id int64) (Lease, bool, error) {
	mu := l.getMutex(id)
	if !mu.TryLock() {
		return nil, false, nil
	}
	return &localLease{mu: mu}, true, nil
}

func (l *Local) getMutex(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if mu, ok := l.mutexes[id]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	l.mutexes[id] = mu
	return mu
}

type localLease struct {
	once sync.Once
	mu   *sync.Mutex
}

func (l *localLease) Release(context.Context) error {
	released := false
	l.once.Do(func() {
		l.mu.Unlock()
		released = true
	})
	if !released {
		return ErrNotHeld
	}
	return nil
}
