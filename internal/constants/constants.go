// Package constants provides centralized constant values used throughout onelock.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file naming.
const (
	// OnelockHome is the hidden directory name where onelock stores its
	// configuration and logs. Created in the user's home directory.
	OnelockHome = ".onelock"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LogFileName is the name of the rotating CLI log file.
	LogFileName = "onelock.log"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// LockFileSuffix is appended to derived lock file names.
	LockFileSuffix = ".lock"
)

// Lock acquisition defaults.
const (
	// DefaultPollInterval is the sleep between non-blocking lock attempts
	// inside a bounded or unbounded acquire loop.
	DefaultPollInterval = 50 * time.Millisecond
)

// LockFilePerm is the permission mode for created lock files.
const LockFilePerm = 0o600

// EnvPrefix is the prefix for onelock environment variable overrides
// (e.g. ONELOCK_LOCK_DIR).
const EnvPrefix = "ONELOCK"
