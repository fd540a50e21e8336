package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/onelock/onelock/filelock"
	"github.com/onelock/onelock/internal/config"
	onelockerrors "github.com/onelock/onelock/internal/errors"
	"github.com/onelock/onelock/internal/signal"
	"github.com/onelock/onelock/singleinstance"
)

// runFlags holds the flags for the run command.
type runFlags struct {
	wait       bool
	timeout    time.Duration
	timeoutSet bool
	backend    string
	lockDir    string
	noPID      bool
}

// AddRunCommand registers `onelock run` on the root command.
func AddRunCommand(root *cobra.Command, getConfig func() *config.Config) {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run NAME -- COMMAND [ARGS...]",
		Short: "Run a command under an exclusive lock",
		Long: `Run executes COMMAND while holding the lock derived from NAME. A second
invocation with the same NAME fails fast by default instead of running
concurrently, which is the behavior cron jobs and deploy scripts want.

Use --wait to block until the lock frees (interruptible with Ctrl+C), or
--timeout to bound the wait. Waiters poll the lock and race freely; no
first-come ordering is promised.`,
		Example: `  # Never let two backups overlap; the loser exits immediately
  onelock run nightly-backup -- /usr/local/bin/backup.sh

  # Wait up to a minute for the previous run to finish
  onelock run nightly-backup --timeout 1m -- /usr/local/bin/backup.sh`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.timeoutSet = cmd.Flags().Changed("timeout")
			return runUnderLock(cmd, args[0], args[1:], flags, getConfig())
		},
	}

	cmd.Flags().BoolVar(&flags.wait, "wait", false, "wait indefinitely for the lock")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "bound the wait for the lock (0 tries once)")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "lock backend: advisory or create (default from config)")
	cmd.Flags().StringVar(&flags.lockDir, "lock-dir", "", "directory for lock files (default from config)")
	cmd.Flags().BoolVar(&flags.noPID, "no-pid", false, "do not record the holder pid in the lock file")
	cmd.MarkFlagsMutuallyExclusive("wait", "timeout")

	root.AddCommand(cmd)
}

// runUnderLock acquires the derived lock, executes the command, and releases
// the lock on every exit path.
func runUnderLock(cmd *cobra.Command, name string, command []string, flags *runFlags, cfg *config.Config) error {
	logger := GetLogger().With().
		Str("run_id", uuid.NewString()).
		Str("name", name).
		Logger()

	lock, err := buildLock(name, flags, cfg)
	if err != nil {
		return err
	}

	// Termination signals cancel the context so even an unbounded wait
	// unwinds promptly.
	handler := signal.NewHandler(cmd.Context())
	defer handler.Stop()
	ctx := handler.Context()

	guard, err := acquire(ctx, lock, flags, cfg)
	if err != nil {
		switch {
		case errors.Is(err, filelock.ErrWouldBlock):
			logger.Warn().Str("lock_path", lock.Path()).Msg("lock is held by another process")
		case errors.Is(err, filelock.ErrLockTimeout):
			logger.Warn().Str("lock_path", lock.Path()).Err(err).Msg("gave up waiting for lock")
		}
		return err
	}
	defer func() { _ = guard.Release() }()

	logger.Debug().Str("lock_path", guard.Path()).Msg("lock acquired")

	start := time.Now()
	execErr := runCommand(ctx, command)
	logger.Info().
		Dur("duration", time.Since(start)).
		Bool("success", execErr == nil).
		Msg("command finished")

	return execErr
}

// buildLock assembles the FileLock from flags layered over config.
func buildLock(name string, flags *runFlags, cfg *config.Config) (*filelock.FileLock, error) {
	backendName := cfg.Backend
	if flags.backend != "" {
		backendName = flags.backend
	}
	backend, err := filelock.ParseBackend(backendName)
	if err != nil {
		return nil, err
	}

	dir := cfg.LockDir
	if flags.lockDir != "" {
		dir = flags.lockDir
	}
	if dir == "" {
		dir = os.TempDir()
	}

	opts := []filelock.Option{
		filelock.WithBackend(backend),
		filelock.WithPollInterval(cfg.PollInterval),
	}
	if cfg.RecordPID && !flags.noPID {
		opts = append(opts, filelock.WithPIDRecord())
	}

	return filelock.New(singleinstance.LockPathIn(dir, name), opts...), nil
}

// acquire picks the acquisition mode: fail fast by default, bounded wait
// with --timeout (or a configured timeout), unbounded with --wait.
func acquire(ctx context.Context, lock *filelock.FileLock, flags *runFlags, cfg *config.Config) (*filelock.Guard, error) {
	switch {
	case flags.wait:
		return lock.Acquire(ctx, filelock.Forever)
	case flags.timeoutSet:
		return lock.Acquire(ctx, flags.timeout)
	case cfg.Timeout > 0:
		return lock.Acquire(ctx, cfg.Timeout)
	default:
		return lock.TryAcquire()
	}
}

// runCommand executes the wrapped command with inherited standard streams.
func runCommand(ctx context.Context, command []string) error {
	c := exec.CommandContext(ctx, command[0], command[1:]...) //#nosec G204 -- running the caller's own command is the point
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit status %d", onelockerrors.ErrCommandFailed, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %w", onelockerrors.ErrCommandFailed, err)
	}
	return nil
}
