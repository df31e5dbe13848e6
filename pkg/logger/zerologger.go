package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ZeroLogger struct {
	zlogger zerolog.Logger
}

// NewZeroLog writes to stderr; stdout is reserved for command output.
func NewZeroLog(env string) *ZeroLogger {
	return NewWithWriter(env, os.Stderr)
}

func NewWithWriter(env string, w io.Writer) *ZeroLogger {
	level := zerolog.DebugLevel
	if env == "production" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZeroLogger{zlogger: logger}
}

// NewNop discards everything.
func NewNop() *ZeroLogger {
	return &ZeroLogger{zlogger: zerolog.Nop()}
}

// With returns a child logger that always carries the given fields.
func (l *ZeroLogger) With(fields ...Field) *ZeroLogger {
	ctx := l.zlogger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZeroLogger{zlogger: ctx.Logger()}
}

// logWithFields applies dynamic fields using typed methods
func (l *ZeroLogger) logWithFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event.Str(f.Key, v)
		case int:
			event.Int(f.Key, v)
		case int64:
			event.Int64(f.Key, v)
		case float64:
			event.Float64(f.Key, v)
		case bool:
			event.Bool(f.Key, v)
		case time.Duration:
			event.Dur(f.Key, v)
		case error:
			event.AnErr(f.Key, v)
		default:
			event.Interface(f.Key, v)
		}
	}
	return event
}

func (l *ZeroLogger) Debug(msg string, fields ...Field) {
	l.logWithFields(l.zlogger.Debug(), fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields ...Field) {
	l.logWithFields(l.zlogger.Info(), fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields ...Field) {
	l.logWithFields(l.zlogger.Warn(), fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, fields ...Field) {
	l.logWithFields(l.zlogger.Error(), fields).Msg(msg)
}
