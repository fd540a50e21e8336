package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onelock/onelock/internal/errors"
	"github.com/onelock/onelock/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, errors.Wrap(nil, "context"))
	})

	t.Run("preserves sentinel through chain", func(t *testing.T) {
		t.Parallel()
		err := errors.Wrap(errors.ErrEmptyValue, "reading name")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEmptyValue)
		assert.Equal(t, "reading name: value cannot be empty", err.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, errors.Wrapf(nil, "locking %s", "/tmp/x"))
	})

	t.Run("interpolates and preserves chain", func(t *testing.T) {
		t.Parallel()
		err := errors.Wrapf(testutil.ErrMockPermission, "locking %s", "/tmp/x")
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrMockPermission)
		assert.Equal(t, "locking /tmp/x: permission denied", err.Error())
	})
}
