package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/onelock/onelock/filelock"
	"github.com/onelock/onelock/internal/constants"
	"github.com/onelock/onelock/internal/errors"
)

// newViperInstance creates a Viper instance with standard onelock
// configuration: defaults, ONELOCK_ environment prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers DefaultConfig as the lowest-precedence layer.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("lock_dir", def.LockDir)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("poll_interval", def.PollInterval)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("record_pid", def.RecordPID)
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (ONELOCK_* prefix)
//  2. Global config (~/.onelock/config.yaml)
//  3. Built-in defaults
//
// Missing config files are not an error; many installations run on defaults
// alone.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// loadGlobalConfig attempts to load ~/.onelock/config.yaml.
// Returns nil if the file doesn't exist or the home directory is unavailable.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no global config; run on defaults
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

// Validate checks a Config for invalid values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if _, err := filelock.ParseBackend(cfg.Backend); err != nil {
		return err
	}
	if cfg.PollInterval <= 0 {
		return errors.Wrap(errors.ErrValueOutOfRange, "poll_interval must be positive")
	}
	if cfg.Timeout < 0 {
		return errors.Wrap(errors.ErrValueOutOfRange, "timeout cannot be negative")
	}
	return nil
}
