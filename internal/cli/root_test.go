package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	t.Run("empty version is dev", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "dev", formatVersion(BuildInfo{}))
	})

	t.Run("full build info", func(t *testing.T) {
		t.Parallel()
		info := BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"}
		assert.Equal(t, "1.2.3 (commit abc123, built 2026-01-02)", formatVersion(info))
	})
}

func TestRootCommand_Help(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "onelock")
	assert.Contains(t, out.String(), "run")
	assert.Contains(t, out.String(), "status")
}

func TestRootCommand_VerboseQuietMutuallyExclusive(t *testing.T) {
	// t.Setenv in sibling tests; keep env-independent but not parallel to
	// avoid racing the package-global logger.
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--verbose", "--quiet", "status", "x"})

	require.Error(t, cmd.Execute())
}
