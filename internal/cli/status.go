package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onelock/onelock/filelock"
	"github.com/onelock/onelock/internal/config"
	"github.com/onelock/onelock/singleinstance"
)

// AddStatusCommand registers `onelock status` on the root command.
func AddStatusCommand(root *cobra.Command, getConfig func() *config.Config) {
	var lockDir string

	cmd := &cobra.Command{
		Use:   "status NAME",
		Short: "Report whether the lock derived from NAME is held",
		Long: `Status probes the lock derived from NAME without disturbing a holder and
reports the recorded holder pid when one is available.

The probe is a snapshot: the lock may change hands immediately after the
answer is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportStatus(cmd, args[0], lockDir, getConfig())
		},
	}

	cmd.Flags().StringVar(&lockDir, "lock-dir", "", "directory for lock files (default from config)")

	root.AddCommand(cmd)
}

// reportStatus prints the holder state of the derived lock.
func reportStatus(cmd *cobra.Command, name, lockDir string, cfg *config.Config) error {
	dir := cfg.LockDir
	if lockDir != "" {
		dir = lockDir
	}
	if dir == "" {
		dir = os.TempDir()
	}

	backend, err := filelock.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}

	probeOpts := []singleinstance.Option{
		singleinstance.WithDir(dir),
		singleinstance.WithBackend(backend),
	}
	running, err := singleinstance.AlreadyRunning(name, probeOpts...)
	if err != nil {
		return err
	}

	path := singleinstance.LockPathIn(dir, name)
	if !running {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: unlocked (%s)\n", name, path)
		return nil
	}

	if pid, ok := singleinstance.HolderPID(name, singleinstance.WithDir(dir)); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: locked by pid %d (%s)\n", name, pid, path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: locked (%s)\n", name, path)
	}
	return nil
}
