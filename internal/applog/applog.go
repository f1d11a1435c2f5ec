// Package applog holds the process-wide structured logger. It is silent until
// SetLogger is called.
package applog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gogpu/gg"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	loggerPtr atomic.Pointer[slog.Logger]
	level     slog.LevelVar
)

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l for the editor and the gg rasterizer. Nil restores the
// silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	gg.SetLogger(l.With("component", "gg"))
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// WithComponent returns the current logger tagged with a component name.
// The tag is resolved at call time, so long-lived holders should call it
// per use rather than caching the result.
func WithComponent(name string) *slog.Logger {
	return Logger().With("component", name)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewText builds a text logger writing to w. Its threshold is the shared
// level, set to l here and adjustable later through SetLevel.
func NewText(w io.Writer, l slog.Level) *slog.Logger {
	level.Set(l)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetLevel changes the threshold of every logger built by NewText.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level reports the current shared threshold.
func Level() slog.Level {
	return level.Level()
}
