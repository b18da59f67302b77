// Package logger wraps log/slog with printf-style helpers and per-subsystem tags.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const tagKey = "tag"

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger // nil until first use or Init
	installed     bool         // set by Init; a fallback logger leaves it false
)

// Config holds the logger settings decoded from the [logger] table.
type Config struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file"` // empty or "-" means stderr
}

// ParseLevel maps a textual level to slog. Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs the process logger, replacing the discarding fallback used
// before it. Only the first call has an effect.
func Init(level slog.Level, output io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if installed {
		return
	}
	if output == nil {
		output = io.Discard
	}
	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	defaultLogger = slog.New(slog.NewTextHandler(output, &opts))
	installed = true
}

// Setup opens the configured output and calls Init. The returned func closes
// the log file, if one was opened.
func Setup(cfg Config) (func() error, error) {
	noop := func() error { return nil }
	if cfg.FilePath == "" || cfg.FilePath == "-" {
		Init(ParseLevel(cfg.Level), os.Stderr)
		return noop, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return noop, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return noop, fmt.Errorf("open log file %q: %w", cfg.FilePath, err)
	}
	Init(ParseLevel(cfg.Level), f)
	return f.Close, nil
}

// current returns the installed logger, or a discarding fallback when Init
// has not run yet. The fallback is replaced by a later Init.
func current() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return defaultLogger
}

func logAtLevel(level slog.Level, format string, args ...any) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = l.Handler().Handle(context.Background(), r)
}

func Debugf(format string, args ...any) { logAtLevel(slog.LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logAtLevel(slog.LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logAtLevel(slog.LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logAtLevel(slog.LevelError, format, args...) }

// Get returns the process logger.
func Get() *slog.Logger {
	return current()
}

// With returns the process logger tagged with a subsystem name.
func With(tag string) *slog.Logger {
	return Get().With(slog.String(tagKey, tag))
}
