// Package config provides onelock's CLI configuration: defaults layered
// under an optional ~/.onelock/config.yaml and ONELOCK_* environment
// variable overrides.
package config

import (
	"time"
)

// Config holds the CLI's configurable behavior. Zero values are never used
// directly; DefaultConfig supplies the base layer.
type Config struct {
	// LockDir is the directory where derived lock files are placed.
	// Empty means the system temporary directory.
	LockDir string `mapstructure:"lock_dir"`

	// Backend names the lock backend: "advisory" or "create".
	Backend string `mapstructure:"backend"`

	// PollInterval is the sleep between acquisition attempts while waiting.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// Timeout bounds waiting when --wait is given without an explicit
	// --timeout. Zero means a single attempt.
	Timeout time.Duration `mapstructure:"timeout"`

	// RecordPID controls whether acquisitions write the holder's pid into
	// the lock file for diagnostics.
	RecordPID bool `mapstructure:"record_pid"`
}
