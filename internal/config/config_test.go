package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onelock/onelock/filelock"
	"github.com/onelock/onelock/internal/config"
	"github.com/onelock/onelock/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	assert.Empty(t, cfg.LockDir)
	assert.Equal(t, "advisory", cfg.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.PollInterval)
	assert.Zero(t, cfg.Timeout, "fail fast by default")
	assert.True(t, cfg.RecordPID)

	require.NoError(t, config.Validate(cfg), "defaults must validate")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *config.Config {
		return config.DefaultConfig()
	}

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, config.Validate(nil), errors.ErrConfigNil)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Backend = "fcntl"
		assert.ErrorIs(t, config.Validate(cfg), filelock.ErrUnknownBackend)
	})

	t.Run("non-positive poll interval", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.PollInterval = 0
		assert.ErrorIs(t, config.Validate(cfg), errors.ErrValueOutOfRange)
	})

	t.Run("negative timeout", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Timeout = -time.Second
		assert.ErrorIs(t, config.Validate(cfg), errors.ErrValueOutOfRange)
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Environment mutation: not parallel.
	t.Setenv("ONELOCK_BACKEND", "create")
	t.Setenv("ONELOCK_POLL_INTERVAL", "25ms")
	t.Setenv("ONELOCK_RECORD_PID", "false")
	t.Setenv("HOME", t.TempDir()) // keep any real ~/.onelock/config.yaml out

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "create", cfg.Backend)
	assert.Equal(t, 25*time.Millisecond, cfg.PollInterval)
	assert.False(t, cfg.RecordPID)
	// Untouched keys keep their defaults.
	assert.Zero(t, cfg.Timeout)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("ONELOCK_BACKEND", "bogus")
	t.Setenv("HOME", t.TempDir())

	_, err := config.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, filelock.ErrUnknownBackend)
}
