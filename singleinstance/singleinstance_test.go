package singleinstance

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onelock/onelock/filelock"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("acquires and records pid", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		instance, err := New("app", WithDir(dir))
		require.NoError(t, err)
		defer func() { _ = instance.Release() }()

		assert.Equal(t, filepath.Join(dir, "app.lock"), instance.LockPath())

		pid, ok := HolderPID("app", WithDir(dir))
		require.True(t, ok)
		assert.Equal(t, os.Getpid(), pid)
	})

	t.Run("conflict terminates instead of returning", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		first, err := New("app", WithDir(dir))
		require.NoError(t, err)
		defer func() { _ = first.Release() }()

		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		exitCode := -1
		second, err := New("app",
			WithDir(dir),
			WithLogger(logger),
			withExitFunc(func(code int) { exitCode = code }),
		)

		assert.Equal(t, 1, exitCode, "losing instance must terminate")
		assert.Nil(t, second)
		assert.ErrorIs(t, err, filelock.ErrWouldBlock)

		logged := buf.String()
		assert.Contains(t, logged, "another instance is already running")
		assert.Contains(t, logged, "holder_pid")
	})

	t.Run("io errors return instead of terminating", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "does", "not", "exist")

		terminated := false
		_, err := New("app",
			WithDir(dir),
			withExitFunc(func(int) { terminated = true }),
		)

		require.Error(t, err)
		assert.NotErrorIs(t, err, filelock.ErrWouldBlock)
		assert.False(t, terminated, "I/O failures must surface to the caller")
	})

	t.Run("lock is free again after release", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		instance, err := New("app", WithDir(dir))
		require.NoError(t, err)
		require.NoError(t, instance.Release())
		require.NoError(t, instance.Release(), "release is idempotent")

		next, err := New("app", WithDir(dir))
		require.NoError(t, err)
		require.NoError(t, next.Release())
	})
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	running, err := AlreadyRunning("app", WithDir(dir))
	require.NoError(t, err)
	assert.False(t, running)

	instance, err := New("app", WithDir(dir))
	require.NoError(t, err)

	running, err = AlreadyRunning("app", WithDir(dir))
	require.NoError(t, err)
	assert.True(t, running)

	require.NoError(t, instance.Release())

	// The probe itself must not have claimed anything.
	running, err = AlreadyRunning("app", WithDir(dir))
	require.NoError(t, err)
	assert.False(t, running)
}

func TestHolderPID_NoInstance(t *testing.T) {
	t.Parallel()

	_, ok := HolderPID("app", WithDir(t.TempDir()))
	assert.False(t, ok)
}

func TestLockPath(t *testing.T) {
	t.Parallel()

	t.Run("deterministic per name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, LockPath("app"), LockPath("app"))
		assert.NotEqual(t, LockPath("app"), LockPath("other"))
	})

	t.Run("flattens path-like names", func(t *testing.T) {
		t.Parallel()
		got := LockPath("usr/local/bin/app")
		assert.Equal(t, filepath.Join(os.TempDir(), "usr-local-bin-app.lock"), got)

		// Windows-style separators and drive colons flatten too.
		assert.Equal(t,
			filepath.Join(os.TempDir(), "C-Apps-app.lock"),
			LockPath(`C:\Apps\app`))
	})
}

func TestProgramName(t *testing.T) {
	t.Parallel()

	name := ProgramName()
	require.NotEmpty(t, name)
	assert.False(t, strings.ContainsAny(name, "/\\:"),
		"derived name must be a single filename component")
}
