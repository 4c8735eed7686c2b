// Package logging configures the process-wide slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// levelRouter is a slog.Handler that routes records below ERROR to one
// handler and ERROR+ to another.
type levelRouter struct {
	level  slog.Leveler
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= lr.level.Level()
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		level:  lr.level,
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// Options selects where and what to log.
type Options struct {
	// Path, if set, receives every record in addition to stdout/stderr.
	Path  string
	Level slog.Level
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Setup installs the default logger. Records below ERROR go to Stdout,
// ERROR goes to Stderr. The returned function closes the log file and is
// never nil.
func Setup(opts Options) (func(), error) {
	stdoutW := opts.Stdout
	if stdoutW == nil {
		stdoutW = os.Stdout
	}
	stderrW := opts.Stderr
	if stderrW == nil {
		stderrW = os.Stderr
	}

	cleanup := func() {}
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return cleanup, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(stdoutW, f)
		stderrW = io.MultiWriter(stderrW, f)
	}

	slog.SetDefault(slog.New(New(stdoutW, stderrW, opts.Level)))
	return cleanup, nil
}

// New returns a text handler pair split by level.
func New(stdout, stderr io.Writer, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: level}
	return &levelRouter{
		level:  level,
		stdout: slog.NewTextHandler(stdout, handlerOpts),
		stderr: slog.NewTextHandler(stderr, handlerOpts),
	}
}
