// Package singleinstance restricts a program to a single running instance
// per host, using a filelock anchored to a well-known path derived from an
// identifying name.
//
// Construct one Instance in the process's startup routine and hold it until
// shutdown:
//
//	instance, err := singleinstance.New(singleinstance.ProgramName())
//	if err != nil {
//	    return err
//	}
//	defer instance.Release()
//
// When another instance already holds the lock, New logs the conflict and
// terminates the process. This is deliberately different from every other
// error path in this module: the caller cannot meaningfully continue, so no
// error is returned. Callers that want to react instead of being terminated
// use AlreadyRunning.
package singleinstance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/onelock/onelock/filelock"
	"github.com/onelock/onelock/internal/constants"
)

// options holds the configurable pieces of instance-lock construction.
type options struct {
	dir     string
	backend filelock.Backend
	logger  zerolog.Logger
	exit    func(int)
}

// Option configures New, AlreadyRunning, and HolderPID.
type Option func(*options)

// WithDir places the derived lock file in dir instead of the system
// temporary directory.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithBackend selects the lock backend. The default is Advisory, so an
// instance lock never goes stale when its holder crashes.
func WithBackend(b filelock.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithLogger sets the logger used to report a losing conflict before the
// process terminates. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// withExitFunc overrides process termination. Used by tests to observe the
// conflict path without exiting the test binary.
func withExitFunc(fn func(int)) Option {
	return func(o *options) { o.exit = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		dir:     os.TempDir(),
		backend: filelock.Advisory,
		logger:  zerolog.Nop(),
		exit:    os.Exit,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Instance is a held instance lock. It records the holder's pid in the lock
// file for diagnostics and stays held for the remaining process lifetime
// unless released explicitly.
type Instance struct {
	lock  *filelock.FileLock
	guard *filelock.Guard
}

// New derives the lock path from name and claims it without blocking.
//
// On success the returned Instance holds the lock. When another instance
// already holds it, New logs the conflict and terminates the process with
// exit code 1 — it does not return. Genuine I/O failures (permission,
// missing directory) are returned as errors like everywhere else.
func New(name string, opts ...Option) (*Instance, error) {
	o := buildOptions(opts)
	path := lockPathIn(o.dir, name)

	lock := filelock.New(path,
		filelock.WithBackend(o.backend),
		filelock.WithPIDRecord(),
	)

	guard, err := lock.TryAcquire()
	if err != nil {
		if errors.Is(err, filelock.ErrWouldBlock) {
			event := o.logger.Error().Str("lock_path", path)
			if pid, ok := filelock.HolderPID(path); ok {
				event = event.Int("holder_pid", pid)
			}
			event.Msg("another instance is already running, quitting")
			o.exit(1)
			// Reached only when termination is overridden in tests.
			return nil, err
		}
		return nil, err
	}

	o.logger.Debug().Str("lock_path", path).Msg("instance lock acquired")
	return &Instance{lock: lock, guard: guard}, nil
}

// Release relinquishes the instance lock. Idempotent; call it on normal
// shutdown so the next invocation starts cleanly.
func (i *Instance) Release() error {
	return i.guard.Release()
}

// LockPath returns the derived lock path this instance holds.
func (i *Instance) LockPath() string {
	return i.lock.Path()
}

// AlreadyRunning reports whether another instance currently holds the lock
// derived from name, without terminating and without keeping the lock: a
// successful probe acquisition is released immediately. With the Create
// backend the probe therefore briefly holds the claim; a racing starter may
// observe it for that instant.
func AlreadyRunning(name string, opts ...Option) (bool, error) {
	o := buildOptions(opts)
	lock := filelock.New(lockPathIn(o.dir, name), filelock.WithBackend(o.backend))

	guard, err := lock.TryAcquire()
	if err != nil {
		if errors.Is(err, filelock.ErrWouldBlock) {
			return true, nil
		}
		return false, err
	}
	return false, guard.Release()
}

// HolderPID reads the pid recorded by the running instance, if any.
func HolderPID(name string, opts ...Option) (int, bool) {
	o := buildOptions(opts)
	return filelock.HolderPID(lockPathIn(o.dir, name))
}

// LockPath returns the deterministic lock path derived from name in the
// system temporary directory. The same name always maps to the same path,
// which is what makes separate processes contend on it.
func LockPath(name string) string {
	return lockPathIn(os.TempDir(), name)
}

// LockPathIn is LockPath with an explicit directory, for callers that keep
// their lock files somewhere other than the system temporary directory.
func LockPathIn(dir, name string) string {
	return lockPathIn(dir, name)
}

// ProgramName derives an identifying name from the running executable's
// path, so unrelated programs (or the same program installed at two
// locations) never contend on one lock.
func ProgramName() string {
	path := os.Args[0]
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return sanitizeName(strings.TrimPrefix(path, string(os.PathSeparator)))
}

func lockPathIn(dir, name string) string {
	return filepath.Join(dir, sanitizeName(name)+constants.LockFileSuffix)
}

// sanitizeName flattens a name (possibly a path) into a single filename
// component.
func sanitizeName(name string) string {
	return strings.NewReplacer("/", "-", "\\", "-", ":", "").Replace(name)
}
