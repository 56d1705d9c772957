// Package logger builds the zerolog logger used by the rbloom command.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled key/value logger.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)

	// Zerolog returns the underlying logger, for components such as
	// rbloom.RedisStore that take a zerolog.Logger directly.
	Zerolog() zerolog.Logger
}

type zeroLogger struct {
	logger zerolog.Logger
}

// New returns a logger writing to out. format "text" selects the console
// writer; anything else writes JSON lines. An unknown level falls back to
// info.
func New(out io.Writer, level string, format string) Logger {
	if format == "text" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}

	z := zerolog.New(out).Level(l).With().Timestamp().Logger()

	return &zeroLogger{logger: z}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zeroLogger{logger: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, keyvals ...any) {
	l.log(l.logger.Debug(), msg, keyvals...)
}

func (l *zeroLogger) Info(msg string, keyvals ...any) {
	l.log(l.logger.Info(), msg, keyvals...)
}

func (l *zeroLogger) Warn(msg string, keyvals ...any) {
	l.log(l.logger.Warn(), msg, keyvals...)
}

func (l *zeroLogger) Error(msg string, keyvals ...any) {
	l.log(l.logger.Error(), msg, keyvals...)
}

func (l *zeroLogger) Zerolog() zerolog.Logger {
	return l.logger
}

func (l *zeroLogger) log(e *zerolog.Event, msg string, keyvals ...any) {
	if e == nil {
		return
	}

	// Pairs with a non-string key or no value are dropped
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		switch v := keyvals[i+1].(type) {
		case error:
			e.AnErr(key, v)
		case time.Duration:
			e.Dur(key, v)
		default:
			e.Interface(key, v)
		}
	}

	e.Msg(msg)
}
