package cli

import (
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/onelock/onelock/internal/config"
	"github.com/onelock/onelock/internal/constants"
	"github.com/onelock/onelock/internal/logging"
)

// InitLogger creates and configures a zerolog.Logger based on verbosity flags.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal: console writer on a TTY with
// colors enabled, JSON to stderr otherwise.
//
// The logger also writes to ~/.onelock/logs/onelock.log with rotation
// enabled. If the log file cannot be created, the logger continues with
// console-only output.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	level := logging.SelectLevel(verbose, quiet)
	console := logging.ConsoleWriter()

	writer := console
	if fileWriter := newLogFileWriter(); fileWriter != nil {
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := logging.New(writer, level)
	setGlobalLogger(logger)
	return logger
}

// newLogFileWriter builds the rotating file writer, or nil when the logs
// directory cannot be determined.
func newLogFileWriter() io.Writer {
	dir, err := config.LogsDir()
	if err != nil {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}
}

// setGlobalLogger configures the global zerolog logger to match our CLI
// logger config, so code using the zerolog/log package gets the same
// formatting.
func setGlobalLogger(cliLogger zerolog.Logger) {
	log.Logger = cliLogger
}
