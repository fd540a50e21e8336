package filelock

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrWouldBlock indicates a non-blocking acquisition found the lock held
	// by another holder. It is also returned when the same FileLock instance
	// is asked to acquire while already holding the lock.
	ErrWouldBlock = errors.New("lock already held")

	// ErrLockTimeout indicates a bounded acquisition expired before the lock
	// became available. Returned wrapped in a *TimeoutError carrying the
	// elapsed duration.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrUnknownBackend indicates an unrecognized backend name was given to
	// ParseBackend.
	ErrUnknownBackend = errors.New("unknown lock backend")
)

// TimeoutError reports a bounded acquisition that expired. It wraps
// ErrLockTimeout so callers can categorize with errors.Is while still
// reading the elapsed wait from the concrete type via errors.As.
type TimeoutError struct {
	// Path is the contended lock path.
	Path string

	// Elapsed is the total time spent waiting before giving up. It is at
	// least the requested timeout and overshoots by at most one poll
	// interval.
	Elapsed time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("lock %s: timed out after %s", e.Path, e.Elapsed)
}

// Unwrap returns ErrLockTimeout, enabling errors.Is categorization.
func (e *TimeoutError) Unwrap() error {
	return ErrLockTimeout
}
