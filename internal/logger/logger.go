// Package logger is a thin wrapper around slog shared by every package.
package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

// logger falls back to the slog default so packages stay usable in tests
// that never call Init.
func logger() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}
