//go:build unix

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onelock/onelock/filelock"
	onelockerrors "github.com/onelock/onelock/internal/errors"
	"github.com/onelock/onelock/singleinstance"
)

func TestRunCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // isolate from any real ~/.onelock

	t.Run("runs command and releases lock", func(t *testing.T) {
		dir := t.TempDir()
		_, err := execute(t, "run", "job", "--lock-dir", dir, "--", "sh", "-c", "exit 0")
		require.NoError(t, err)

		// The deferred guard release must have run.
		guard, err := filelock.New(singleinstance.LockPathIn(dir, "job")).TryAcquire()
		require.NoError(t, err)
		require.NoError(t, guard.Release())
	})

	t.Run("propagates command failure", func(t *testing.T) {
		dir := t.TempDir()
		_, err := execute(t, "run", "job", "--lock-dir", dir, "--", "sh", "-c", "exit 3")
		require.Error(t, err)
		assert.ErrorIs(t, err, onelockerrors.ErrCommandFailed)
		assert.Contains(t, err.Error(), "exit status 3")
	})

	t.Run("fails fast when lock is held", func(t *testing.T) {
		dir := t.TempDir()
		lock := filelock.New(singleinstance.LockPathIn(dir, "job"))
		guard, err := lock.TryAcquire()
		require.NoError(t, err)
		defer func() { _ = guard.Release() }()

		_, err = execute(t, "run", "job", "--lock-dir", dir, "--", "sh", "-c", "exit 0")
		require.Error(t, err)
		assert.ErrorIs(t, err, filelock.ErrWouldBlock)
	})

	t.Run("bounded wait times out while held", func(t *testing.T) {
		dir := t.TempDir()
		lock := filelock.New(singleinstance.LockPathIn(dir, "job"))
		guard, err := lock.TryAcquire()
		require.NoError(t, err)
		defer func() { _ = guard.Release() }()

		_, err = execute(t,
			"run", "job", "--lock-dir", dir, "--timeout", "50ms",
			"--", "sh", "-c", "exit 0")
		require.Error(t, err)
		assert.ErrorIs(t, err, filelock.ErrLockTimeout)
	})

	t.Run("rejects unknown backend", func(t *testing.T) {
		dir := t.TempDir()
		_, err := execute(t,
			"run", "job", "--lock-dir", dir, "--backend", "fcntl",
			"--", "sh", "-c", "exit 0")
		require.Error(t, err)
		assert.ErrorIs(t, err, filelock.ErrUnknownBackend)
	})

	t.Run("create backend leaves no file behind", func(t *testing.T) {
		dir := t.TempDir()
		_, err := execute(t,
			"run", "job", "--lock-dir", dir, "--backend", "create",
			"--", "sh", "-c", "exit 0")
		require.NoError(t, err)

		guard, err := filelock.New(
			singleinstance.LockPathIn(dir, "job"),
			filelock.WithBackend(filelock.Create),
		).TryAcquire()
		require.NoError(t, err, "release must have removed the lock file")
		require.NoError(t, guard.Release())
	})
}
