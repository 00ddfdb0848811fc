package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
)

var std = New(os.Stdout, "info")

// Init installs the process-wide JSON logger at the given level.
// Unknown levels fall back to info.
func Init(level string) {
	std = New(os.Stdout, level)
	slog.SetDefault(std)
	std.Info("logger initialized", slog.String("level", level))
}

// New builds a JSON slog logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Use replaces the process-wide logger and returns a func restoring the
// previous one.
func Use(l *slog.Logger) (restore func()) {
	prev := std
	std = l
	return func() { std = prev }
}

// L returns the process-wide logger.
func L() *slog.Logger {
	return std
}

func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
	os.Exit(1)
}

func write(level slog.Level, msg string, fields map[string]any) {
	std.LogAttrs(context.Background(), level, msg, Attrs(fields)...)
}

// Attrs converts a field map into slog attributes in key order,
// so log lines stay stable across runs.
func Attrs(fields map[string]any) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}
