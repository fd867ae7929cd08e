// Package logs configures the process-wide slog logger: readable text on a
// terminal, JSON otherwise, and optionally a rotating JSON file alongside.
package logs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Init.
type Options struct {
	Level      slog.Level
	File       string // empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init installs the default logger and returns a closer for the file sink.
func Init(console *os.File, opts Options) (io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var consoleHandler slog.Handler
	if isatty.IsTerminal(console.Fd()) || isatty.IsCygwinTerminal(console.Fd()) {
		consoleHandler = slog.NewTextHandler(console, handlerOpts)
	} else {
		consoleHandler = slog.NewJSONHandler(console, handlerOpts)
	}

	if opts.File == "" {
		slog.SetDefault(slog.New(consoleHandler))
		return io.NopCloser(nil), nil
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    max(1, opts.MaxSizeMB),
		MaxBackups: max(0, opts.MaxBackups),
		MaxAge:     max(0, opts.MaxAgeDays),
		Compress:   true,
	}
	fileHandler := slog.NewJSONHandler(file, handlerOpts)
	slog.SetDefault(slog.New(Tee(consoleHandler, fileHandler)))
	return file, nil
}

// Tee fans every record out to all handlers.
func Tee(handlers ...slog.Handler) slog.Handler {
	return teeHandler(handlers)
}

type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, lvl) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
