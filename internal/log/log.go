// Package log provides categorized, file-backed structured logging.
//
// The TUI owns stdout, so all logging goes to a file. Each call tags a
// Category so a single log can be filtered per subsystem:
//
//	log.Debug(log.CatPlayback, "trigger", "group", name, "index", i)
//
// Before Init the package discards everything, which keeps library code
// free to log unconditionally (tests, inspection subcommands).
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category identifies the subsystem a log entry belongs to.
type Category string

// Log categories, one per subsystem.
const (
	CatAudio    Category = "audio"
	CatCatalog  Category = "catalog"
	CatPlayback Category = "playback"
	CatUI       Category = "ui"
	CatDB       Category = "db"
	CatConfig   Category = "config"
	CatWatch    Category = "watch"
	CatHistory  Category = "history"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

// Init opens (or creates) the log file at path and routes all subsequent
// calls to it at the given level. The parent directory is created if
// missing. Init replaces any previous destination.
func Init(path string, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = slog.New(h)
	return nil
}

// Close flushes and closes the log file. Safe to call when Init never ran.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", s)
	}
}

// Debug logs at debug level under the given category.
func Debug(cat Category, msg string, args ...any) { current().Debug(msg, prepend(cat, args)...) }

// Info logs at info level under the given category.
func Info(cat Category, msg string, args ...any) { current().Info(msg, prepend(cat, args)...) }

// Warn logs at warn level under the given category.
func Warn(cat Category, msg string, args ...any) { current().Warn(msg, prepend(cat, args)...) }

// Error logs at error level under the given category.
func Error(cat Category, msg string, args ...any) { current().Error(msg, prepend(cat, args)...) }

// ErrorErr logs an error value at error level under the given category.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	current().Error(msg, prepend(cat, append([]any{"error", err}, args...))...)
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func prepend(cat Category, args []any) []any {
	out := make([]any, 0, len(args)+2)
	out = append(out, "cat", string(cat))
	return append(out, args...)
}
