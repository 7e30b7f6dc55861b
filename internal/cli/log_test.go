package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/floorgen/pkg/layout"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestInstallLoggerRoutesLibraryLogs(t *testing.T) {
	var buf bytes.Buffer
	installLogger(newLogger(&buf, log.DebugLevel))
	t.Cleanup(func() { layout.SetLogger(nil) })

	if _, err := layout.GenerateAll(layout.RectBoundary(1, 1), layout.DefaultSpec(layout.Tile)); err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("library debug output should reach the CLI logger")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	p.start = p.start.Add(-1500 * time.Millisecond)
	p.done("Generated 3 placements")

	out := buf.String()
	if !strings.Contains(out, "Generated 3 placements") || !strings.Contains(out, "1.5") {
		t.Errorf("output = %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected log.Default() without an attached logger")
	}
}
