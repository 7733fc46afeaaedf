package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Configure installs the global logger. Logs go to stderr so command output
// on stdout stays clean.
func Configure(devMode bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var level zerolog.Level
	if devMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.InfoLevel
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339Nano,
	}).
		With().
		Timestamp().
		Logger().
		Level(level)
	zerolog.DefaultContextLogger = &log.Logger
}
