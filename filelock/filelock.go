package filelock

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/onelock/onelock/internal/clock"
	"github.com/onelock/onelock/internal/constants"
)

// Forever requests an unbounded wait from Acquire. The loop then runs until
// acquisition succeeds or the context is canceled.
const Forever time.Duration = -1

// Option configures a FileLock at construction.
type Option func(*FileLock)

// WithBackend selects the claim mechanism. The default is Advisory.
func WithBackend(b Backend) Option {
	return func(l *FileLock) { l.backend = b }
}

// WithPollInterval sets the sleep between non-blocking attempts inside
// Acquire. The default is 50ms. The interval also bounds how quickly an
// Acquire loop observes context cancellation.
func WithPollInterval(d time.Duration) Option {
	return func(l *FileLock) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithPIDRecord makes every successful acquisition record the holder's
// process id in the lock file. The content is diagnostic only; callers
// building an explicit staleness-recovery policy read it back with
// HolderPID. Off by default.
func WithPIDRecord() Option {
	return func(l *FileLock) { l.recordPID = true }
}

// withClock overrides the time source. Used by tests to drive the poll loop
// without real sleeping.
func withClock(c clock.Clock) Option {
	return func(l *FileLock) { l.clk = c }
}

// FileLock is the public synchronization primitive over one path. The path
// is fixed at construction. Zero value is not usable; construct with New.
//
// A FileLock instance is safe for concurrent use, but it represents a single
// claim: once held, further acquisitions through the same instance fail with
// ErrWouldBlock until release, the same way a foreign process would observe.
// Mutual exclusion across processes comes entirely from the backend's
// atomicity; no in-process lock is layered on top of it.
type FileLock struct {
	path         string
	backend      Backend
	pollInterval time.Duration
	recordPID    bool
	clk          clock.Clock

	// mu guards the fields below for memory safety only; it plays no part
	// in the mutual-exclusion contract.
	mu         sync.Mutex
	file       *os.File
	held       bool
	gen        uint64
	acquiredAt time.Time
}

// New constructs a FileLock over path. Nothing touches the filesystem until
// the first acquisition attempt.
func New(path string, opts ...Option) *FileLock {
	l := &FileLock{
		path:         path,
		backend:      Advisory,
		pollInterval: constants.DefaultPollInterval,
		clk:          clock.RealClock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the lock path.
func (l *FileLock) Path() string {
	return l.path
}

// Held reports whether this instance currently holds the lock.
func (l *FileLock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held
}

// TryAcquire attempts the claim once, without blocking. It returns a Guard
// on success and ErrWouldBlock when another holder (or this instance) has
// the lock. Backend I/O errors propagate unchanged.
func (l *FileLock) TryAcquire() (*Guard, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tryAcquireLocked()
}

// Acquire polls the non-blocking claim until it succeeds, the timeout
// expires, or ctx is canceled.
//
// A timeout of zero attempts once and returns a *TimeoutError if the lock
// is held. A positive timeout bounds the wait; expiry returns a
// *TimeoutError whose Elapsed is at least the timeout and overshoots by at
// most one poll interval. Forever waits until ctx is canceled, which is how
// unbounded waits stay responsive to process termination.
//
// Backend I/O errors abort the loop immediately; they are never retried.
// Waiters race freely between polls, so no FIFO ordering is implied.
func (l *FileLock) Acquire(ctx context.Context, timeout time.Duration) (*Guard, error) {
	start := l.clk.Now()
	var deadline time.Time
	if timeout >= 0 {
		deadline = start.Add(timeout)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		l.mu.Lock()
		guard, err := l.tryAcquireLocked()
		l.mu.Unlock()
		if err == nil {
			return guard, nil
		}
		if !errors.Is(err, ErrWouldBlock) {
			return nil, err
		}

		if timeout >= 0 && !l.clk.Now().Before(deadline) {
			return nil, &TimeoutError{Path: l.path, Elapsed: l.clk.Now().Sub(start)}
		}

		l.clk.Sleep(l.pollInterval)
	}
}

// Release relinquishes the lock. If the lock is not held this is a no-op,
// never an error: release is idempotent by contract.
func (l *FileLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.releaseLocked()
}

// AcquiredAt returns the time of the current acquisition, or the zero time
// when the lock is not held.
func (l *FileLock) AcquiredAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held {
		return time.Time{}
	}
	return l.acquiredAt
}

// tryAcquireLocked performs one non-blocking attempt. Caller holds l.mu.
func (l *FileLock) tryAcquireLocked() (*Guard, error) {
	if l.held {
		// Reentrancy is unsupported: the same instance observes exactly
		// what a foreign process would.
		return nil, ErrWouldBlock
	}

	f, err := l.backend.tryAcquire(l.path, l.recordPID)
	if err != nil {
		return nil, err
	}

	l.file = f
	l.held = true
	l.gen++
	l.acquiredAt = l.clk.Now()
	return &Guard{lock: l, gen: l.gen}, nil
}

// releaseLocked releases the current claim. Caller holds l.mu.
func (l *FileLock) releaseLocked() error {
	if !l.held {
		return nil
	}

	err := l.backend.release(l.file, l.path)
	l.file = nil
	l.held = false
	return err
}

// releaseGen releases the claim identified by gen. Stale guards from earlier
// acquisitions become no-ops instead of releasing a lock they do not own.
func (l *FileLock) releaseGen(gen uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held || l.gen != gen {
		return nil
	}
	return l.releaseLocked()
}
