package filelock

import (
	"fmt"
	"os"
	"strconv"

	"github.com/onelock/onelock/internal/constants"
)

// Backend selects the platform primitive used to claim a path. The set is
// closed: exactly two mechanisms exist and both present the same contract to
// FileLock — a non-blocking attempt that either acquires, reports the lock
// held elsewhere, or fails with a real I/O error.
type Backend int

const (
	// Advisory claims the path with an OS advisory lock on an open
	// descriptor (flock on Unix, LockFileEx on Windows). The descriptor
	// must stay open for the duration: closing it releases the lock as a
	// side effect, so the handle lifetime is the lock lifetime. The OS
	// drops the lock when the holder process dies, which makes this
	// backend immune to stale locks after a crash.
	Advisory Backend = iota

	// Create claims the path by creating the lock file with O_EXCL:
	// presence of the file is the claim, absence means unlocked. Release
	// deletes the file. A crashed holder leaves the file behind with no
	// built-in staleness detection; recovery policy is the caller's.
	Create
)

// String returns the backend's configuration name.
func (b Backend) String() string {
	switch b {
	case Advisory:
		return "advisory"
	case Create:
		return "create"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a configuration name to a Backend.
// Returns ErrUnknownBackend for anything outside the closed set.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "advisory":
		return Advisory, nil
	case "create":
		return Create, nil
	default:
		return Advisory, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// tryAcquire attempts a non-blocking exclusive claim on path.
// On success the returned file must be kept open until release.
// Returns ErrWouldBlock when another holder has the claim; any other error
// is a genuine I/O failure and is never retryable.
func (b Backend) tryAcquire(path string, recordPID bool) (*os.File, error) {
	switch b {
	case Create:
		return tryCreate(path, recordPID)
	default:
		return tryAdvisory(path, recordPID)
	}
}

// release relinquishes a claim previously returned by tryAcquire.
func (b Backend) release(f *os.File, path string) error {
	switch b {
	case Create:
		return releaseCreate(f, path)
	default:
		return releaseAdvisory(f)
	}
}

// tryCreate claims path by atomic creation of the lock file.
func tryCreate(path string, recordPID bool) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, constants.LockFilePerm) //#nosec G304 -- lock path is chosen by the caller
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrWouldBlock
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}

	if recordPID {
		if err := writePID(f); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return nil, err
		}
	}
	return f, nil
}

// releaseCreate deletes the lock file; the claim is its existence.
func releaseCreate(f *os.File, path string) error {
	if err := f.Close(); err != nil {
		// Still try to remove the file so the claim is not left stuck.
		_ = os.Remove(path)
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// tryAdvisory opens (or creates) the lock file and takes a non-blocking
// exclusive advisory lock on it. The file persists across releases; only
// the advisory lock carries the claim.
func tryAdvisory(path string, recordPID bool) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, constants.LockFilePerm) //#nosec G302,G304 -- lock file needs write access, path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := flockExclusive(f.Fd()); err != nil {
		_ = f.Close()
		if isWouldBlock(err) {
			return nil, ErrWouldBlock
		}
		return nil, fmt.Errorf("failed to lock file: %w", err)
	}

	if recordPID {
		if err := writePID(f); err != nil {
			_ = flockUnlock(f.Fd())
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// releaseAdvisory drops the advisory lock and closes the descriptor.
func releaseAdvisory(f *os.File) error {
	if err := flockUnlock(f.Fd()); err != nil {
		// Still close the descriptor; on most platforms that drops the
		// lock anyway.
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close lock file: %w", err)
	}
	return nil
}

// writePID records the holder's process id in the lock file for diagnostics.
// The content is irrelevant to correctness; it only serves staleness
// inspection via HolderPID.
func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate lock file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind lock file: %w", err)
	}
	if _, err := f.WriteString(strconv.Itoa(os.Getpid()) + "\n"); err != nil {
		return fmt.Errorf("failed to write pid to lock file: %w", err)
	}
	return nil
}
