package config

import (
	"os"
	"path/filepath"

	"github.com/onelock/onelock/internal/constants"
	"github.com/onelock/onelock/internal/errors"
)

// GlobalConfigDir returns the path to the onelock configuration directory.
// This is typically ~/.onelock on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.OnelockHome), nil
}

// GlobalConfigPath returns the full path to the configuration file.
// This is typically ~/.onelock/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// LogsDir returns the directory for rotated CLI log files, typically
// ~/.onelock/logs.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
