// Package lock provides the mutual-exclusion primitive that serializes
// scheduler cycles across processes.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultID is the advisory lock key shared by every scheduler instance.
const DefaultID int64 = 987654321

// releaseTimeout bounds Release when the caller's context is already done.
const releaseTimeout = 5 * time.Second

// ErrNotHeld is returned by Release when the lease was lost before release.
var ErrNotHeld = errors.New("lock not held")

// Locker hands out non-blocking leases on an integer key.
type Locker interface {
	// TryAcquire returns ok=false without error when another holder has the lock.
	TryAcquire(ctx context.Context, id int64) (lease Lease, ok bool, err error)
}

// Lease is a held lock. Release must be called exactly once.
type Lease interface {
	Release(ctx context.Context) error
}

// With runs fn while holding the lock. It returns acquired=false, and does not
// call fn, when the lock is held elsewhere. The lease is released on every
// exit path of fn, panics included.
func With(ctx context.Context, l Locker, id int64, fn func(ctx context.Context) error) (acquired bool, err error) {
	lease, ok, err := l.TryAcquire(ctx, id)
	if err != nil {
		return false, fmt.Errorf("acquire lock %d: %w", id, err)
	}
	if !ok {
		return false, nil
	}

	defer func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if rerr := lease.Release(rctx); rerr != nil {
			err = errors.Join(err, fmt.Errorf("release lock %d: %w", id, rerr))
		}
	}()

	return true, fn(ctx)
}
