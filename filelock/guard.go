package filelock

import "time"

// Guard is the handle returned by a successful acquisition. Releasing the
// guard releases the lock; the canonical pattern defers it immediately so
// the lock is released on every exit path, normal or error:
//
//	guard, err := lock.TryAcquire()
//	if err != nil {
//	    return err
//	}
//	defer guard.Release()
//
// A guard releases only its own acquisition: once released, further Release
// calls are no-ops even if the underlying FileLock has since been
// reacquired by someone else.
type Guard struct {
	lock *FileLock
	gen  uint64
}

// Release relinquishes the acquisition this guard represents. Idempotent:
// a second call (or a call after FileLock.Release) is a no-op, not an error.
func (g *Guard) Release() error {
	return g.lock.releaseGen(g.gen)
}

// Path returns the lock path.
func (g *Guard) Path() string {
	return g.lock.Path()
}

// AcquiredAt returns the time this guard's acquisition succeeded, or the
// zero time if the guard has been released.
func (g *Guard) AcquiredAt() time.Time {
	g.lock.mu.Lock()
	defer g.lock.mu.Unlock()
	if !g.lock.held || g.lock.gen != g.gen {
		return time.Time{}
	}
	return g.lock.acquiredAt
}
