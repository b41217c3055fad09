package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var (
	base    = zerolog.New(console()).With().Timestamp().Logger()
	logFile *os.File
)

func console() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
}

// InitLogging configures the process logger. Console output always goes to
// stdout; when path is set, JSON lines are also appended to that file.
// A file opened by a previous call is closed.
func InitLogging(path string) {
	closeFile()
	var w io.Writer = console()
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", path, err)
		} else {
			logFile = f
			w = zerolog.MultiLevelWriter(w, f)
		}
	}
	base = zerolog.New(w).With().Timestamp().Logger()
}

// Close closes the log file, if any, and falls back to console output.
func Close() error {
	if logFile == nil {
		return nil
	}
	base = zerolog.New(console()).With().Timestamp().Logger()
	return closeFile()
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput replaces the logger output. Tests use it to capture or silence logs.
func SetOutput(w io.Writer) {
	closeFile()
	base = zerolog.New(w).With().Timestamp().Logger()
}

// WithFields returns a context whose log lines carry the given key/value pair.
func WithFields(ctx context.Context, key string, value interface{}) context.Context {
	l := from(ctx).With().Interface(key, value).Logger()
	return context.WithValue(ctx, ctxKey{}, l)
}

func from(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return l
		}
	}
	return base
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	l := from(ctx)
	l.Debug().Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	l := from(ctx)
	l.Info().Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	l := from(ctx)
	l.Warn().Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	l := from(ctx)
	l.Error().Msgf(format, args...)
}
