package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures the global logger.
type Options struct {
	// Verbosity maps -v counts to levels: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Debug forces at least debug level regardless of Verbosity.
	Debug bool
	// NoColor disables ANSI colors in console output.
	NoColor bool
	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

var setupMu sync.Mutex

// Setup configures the global zerolog logger.
// It may be called more than once; the last call wins.
func Setup(opts Options) {
	setupMu.Lock()
	defer setupMu.Unlock()

	zerolog.SetGlobalLevel(levelFor(opts))

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	logger := zerolog.New(console).With().Timestamp().Logger()
	if opts.Debug || opts.Verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger

	log.Debug().
		Int("verbosity", opts.Verbosity).
		Bool("debug", opts.Debug).
		Msg("Logger initialized")
}

// levelFor returns the zerolog level for the given options.
func levelFor(opts Options) zerolog.Level {
	level := zerolog.WarnLevel
	switch {
	case opts.Verbosity <= 0:
		level = zerolog.WarnLevel
	case opts.Verbosity == 1:
		level = zerolog.InfoLevel
	case opts.Verbosity == 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}
	if opts.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	return level
}

// GetLogger returns a logger tagged with the given component name.
// Call it at use time so it picks up the logger installed by Setup.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// IsDebugEnabled reports whether debug-level messages are emitted.
func IsDebugEnabled() bool {
	return zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
