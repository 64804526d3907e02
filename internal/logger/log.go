package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
	Debug(msg string)
	With(key string, value any) Logger
	Named(loggerName string) Logger
}

const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

type Options struct {
	Format string
	Level  string
	Writer io.Writer
}

func New(loggerName string) Logger {
	return NewWithOptions(loggerName, Options{})
}

// Nop discards everything. Used by tests.
func Nop() Logger {
	return NewWithOptions("nop", Options{Writer: io.Discard})
}

func NewWithOptions(loggerName string, opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	switch strings.ToLower(opts.Format) {
	case FormatPretty:
		l := charmlog.NewWithOptions(w, charmlog.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Level:           charmLevel(opts.Level),
		})
		return prettyLogger{l.WithPrefix(loggerName)}
	case FormatJSON:
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     slogLevel(opts.Level),
			AddSource: true,
		})
		return newBlackjackLogger(slog.New(handler), loggerName)
	default:
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     slogLevel(opts.Level),
			AddSource: true,
		})
		return newBlackjackLogger(slog.New(handler), loggerName)
	}
}

// ValidFormat reports whether format names a known backend.
func ValidFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatText, FormatJSON, FormatPretty:
		return nil
	}
	return fmt.Errorf("unknown log format %q", format)
}

func slogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelDebug
	}
	return l
}

func charmLevel(level string) charmlog.Level {
	l, err := charmlog.ParseLevel(level)
	if err != nil {
		return charmlog.DebugLevel
	}
	return l
}

type BlackjackLogger struct {
	logger *slog.Logger
	base   *slog.Logger
}

func newBlackjackLogger(base *slog.Logger, loggerName string) BlackjackLogger {
	return BlackjackLogger{logger: base.With(slog.String("logger", loggerName)), base: base}
}

func (bl BlackjackLogger) Info(msg string) {
	bl.logger.Info(msg)
}

func (bl BlackjackLogger) Error(msg string, err error) {
	if err != nil {
		e := slog.String("error", err.Error())
		bl.logger.Error(msg, e)
		return
	}
	bl.logger.Error(msg)
}

func (bl BlackjackLogger) Debug(msg string) {
	bl.logger.Debug(msg)
}

func (bl BlackjackLogger) With(key string, value any) Logger {
	return BlackjackLogger{logger: bl.logger.With(slog.Any(key, value)), base: bl.base}
}

func (bl BlackjackLogger) Named(loggerName string) Logger {
	return newBlackjackLogger(bl.base, loggerName)
}

type prettyLogger struct {
	logger *charmlog.Logger
}

func (pl prettyLogger) Info(msg string) {
	pl.logger.Helper()
	pl.logger.Info(msg)
}

func (pl prettyLogger) Error(msg string, err error) {
	pl.logger.Helper()
	if err != nil {
		pl.logger.Error(msg, "error", err)
		return
	}
	pl.logger.Error(msg)
}

func (pl prettyLogger) Debug(msg string) {
	pl.logger.Helper()
	pl.logger.Debug(msg)
}

func (pl prettyLogger) With(key string, value any) Logger {
	return prettyLogger{pl.logger.With(key, value)}
}

func (pl prettyLogger) Named(loggerName string) Logger {
	return prettyLogger{pl.logger.WithPrefix(loggerName)}
}
