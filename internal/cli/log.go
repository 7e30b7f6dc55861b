// Package cli implements the floorgen command-line interface.
//
// # Commands
//
//   - generate: lay out a floor and print its placements as JSON
//   - preview: render a top-down PNG
//   - takeoff: write a material takeoff workbook
//   - mesh: build the 3D slabs and report mesh statistics
//   - kinds: list the pattern kinds and their defaults
//
// Floors are read from TOML (.toml) or from the Lisp description language
// (any other extension).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context and also backs the library packages'
// slog output.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/floorgen/pkg/layout"
)

// newLogger creates a logger writing to w at level, with timestamps as
// "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installLogger routes the library packages' logging through l.
func installLogger(l *log.Logger) {
	layout.SetLogger(slog.New(l))
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Generated 412 placements (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
