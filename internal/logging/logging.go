// Package logging configures the process logger and routes pipeline
// diagnostics into it.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ariel-frischer/changelog/internal/diag"
)

// Level maps the number of -v flags to a zerolog level.
// Without flags only fatal messages are printed; each -v enables one more level.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.FatalLevel
	case verbosity == 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.WarnLevel
	case verbosity == 3:
		return zerolog.InfoLevel
	case verbosity == 4:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New returns a console logger writing to w at the level selected by verbosity.
func New(w io.Writer, verbosity int, noColor bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(Level(verbosity)).With().Timestamp().Logger()
}

// Sink adapts logger into a diag.Sink. Empty event fields are omitted.
func Sink(logger zerolog.Logger) diag.Sink {
	return diag.SinkFunc(func(e diag.Event) {
		ev := logger.WithLevel(level(e.Level))
		if ev == nil {
			return
		}
		ev = ev.Str("reason", string(e.Reason))
		for _, f := range []struct{ key, value string }{
			{"repository", e.Repository},
			{"hash", e.Hash},
			{"tag", e.Tag},
			{"kind", e.Kind},
			{"scope", e.Scope},
			{"subject", e.Subject},
		} {
			if f.value != "" {
				ev = ev.Str(f.key, f.value)
			}
		}
		ev.Msg(e.Message)
	})
}

// GitDebug returns a printf-style hook for git.SetDebugLogger that logs at
// debug level.
func GitDebug(logger zerolog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func level(l diag.Level) zerolog.Level {
	switch l {
	case diag.LevelDebug:
		return zerolog.DebugLevel
	case diag.LevelInfo:
		return zerolog.InfoLevel
	case diag.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
