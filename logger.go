package fixmath

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so LogStats and the
// debug checks skip building attributes until a logger is installed.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var (
	silent  = slog.New(discard{})
	current atomic.Pointer[slog.Logger]
)

// SetLogger routes fixmath diagnostics to l; nil restores the silent
// default. The logger is shared by every Tree. See "Diagnostics" in the
// package documentation for what is logged at which level.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger fixmath writes to.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}

// warn reports a debug-mode diagnostic about node i.
func (t *Tree) warn(msg string, i uint32, args ...any) {
	l := Logger()
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		return
	}
	l.Warn(msg, append([]any{"node", t.slots[i].name}, args...)...)
}
