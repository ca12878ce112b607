package logger

import (
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// Slog returns a slog logger writing into l's sinks under the given name,
// for libraries that log through slog.
func Slog(l *zap.Logger, name string) *slog.Logger {
	return slog.New(zapslog.NewHandler(l.Core(), zapslog.WithName(name), zapslog.WithCaller(true)))
}
