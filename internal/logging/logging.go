// Package logging provides zerolog construction helpers shared by the CLI
// and tests: verbosity-flag level selection and terminal-aware output choice.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// SelectLevel maps verbosity flags to a zerolog level.
//
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// verbose wins when both flags are set.
func SelectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// ConsoleWriter returns the writer for interactive output: a zerolog console
// writer when stderr is a terminal and NO_COLOR is unset, plain JSON to
// stderr otherwise.
func ConsoleWriter() io.Writer {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return os.Stderr
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr}
}

// New builds a timestamped logger at the given level writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
