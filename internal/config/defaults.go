package config

import (
	"github.com/onelock/onelock/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are the base layer that config files, environment
// variables, and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		// LockDir: empty selects the system temporary directory, matching
		// where singleinstance derives its paths.
		LockDir: "",

		// Backend: "advisory" is crash-safe — the OS drops the lock when
		// the holder dies — so it is the right default for unattended use.
		Backend: "advisory",

		// PollInterval: 50ms keeps contention cheap while bounding how
		// long a waiter overshoots its timeout.
		PollInterval: constants.DefaultPollInterval,

		// Timeout: zero means fail fast when the lock is held. Installations
		// that prefer short waits over failures set this in config.yaml.
		Timeout: 0,

		// RecordPID: on by default so `onelock status` can report who
		// holds a lock.
		RecordPID: true,
	}
}
