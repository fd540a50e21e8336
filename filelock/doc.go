// Package filelock provides cross-process mutual exclusion anchored to a
// filesystem path.
//
// A FileLock wraps one path and guarantees that at most one acquisition on
// that path succeeds at any instant, across independent OS processes as well
// as within a single process. Two backends implement the claim, behind one
// contract:
//
//   - Advisory (default): an OS advisory lock taken on an open descriptor
//     (flock on Unix, LockFileEx on Windows). The descriptor stays open for
//     the lifetime of the lock; the OS releases the lock automatically if the
//     holder dies, so this backend cannot go stale after a crash. The lock
//     file persists across releases.
//   - Create: the claim is the existence of the lock file itself, created
//     with O_EXCL. Release deletes the file. A holder that crashes leaves
//     the file behind and the lock stuck until someone cleans it up; see
//     HolderPID for the diagnostic hook callers can build recovery on.
//
// The primary usage form is the guard returned by acquisition, released on
// every exit path with defer:
//
//	lock := filelock.New("/tmp/x.lock")
//	guard, err := lock.TryAcquire()
//	if err != nil {
//	    // errors.Is(err, filelock.ErrWouldBlock) when another holder has it
//	    return err
//	}
//	defer guard.Release()
//
// Bounded and unbounded waiting poll the non-blocking claim:
//
//	guard, err := lock.Acquire(ctx, 5*time.Second) // TimeoutError on expiry
//	guard, err := lock.Acquire(ctx, filelock.Forever)
//
// Unbounded waits unwind when ctx is canceled; pair them with a
// signal-derived context so they stay responsive to process termination.
//
// Explicit FileLock.Release exists for callers whose lock lifetime does not
// fit a single lexical scope; pairing it correctly is then the caller's
// responsibility. Release is idempotent in all forms.
//
// Waiters are not queued: acquisition polls, and any waiter may win a given
// race. Do not rely on FIFO fairness under contention.
//
// A FileLock is not reentrant. A second acquisition through an instance that
// already holds the lock fails with ErrWouldBlock, exactly as a foreign
// process would observe, rather than deadlocking.
package filelock
