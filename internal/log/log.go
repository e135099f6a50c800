// Package log is a thin leveled logging facade used across the CLI and the
// converters. Diagnostic chatter (dropped locations, unknown severities)
// goes to Debugf and only surfaces with --verbose.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// SetVerbose lowers the threshold to debug.
func SetVerbose(verbose bool) {
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
		return
	}
	logger = logger.Level(zerolog.InfoLevel)
}

// SetOutput redirects log output, used by tests to silence or capture it.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

func Debugf(format string, v ...any) {
	logger.Debug().Msgf(format, v...)
}

func Infof(format string, v ...any) {
	logger.Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	logger.Warn().Msgf(format, v...)
}

func Errorf(format string, v ...any) {
	logger.Error().Msgf(format, v...)
}
