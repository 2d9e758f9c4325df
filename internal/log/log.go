// Package log is a small key/value logging facade over zap.
//
// Calls take a message followed by alternating keys and values:
//
//	log.Info("events loaded", "count", 12, "source", "data/all.json")
//	log.Error("load failed", err, "source", src)
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging threshold.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(zapcore.Lock(os.Stderr))
	closer func() error
)

func newLogger(out zapcore.WriteSyncer) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), out, level)
	return zap.New(core).Sugar()
}

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// SetLevel sets the minimum level written.
func SetLevel(l Level) {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(l)); err != nil {
		zl = zapcore.InfoLevel
	}
	level.SetLevel(zl)
}

// SetOutput redirects log lines to the file at path, creating parent
// directories as needed.
func SetOutput(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer()
	}
	logger = newLogger(zapcore.Lock(f))
	closer = f.Close
	return nil
}

// Discard drops every log line. Used by tests and the TUI without a log file.
func Discard() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer()
		closer = nil
	}
	logger = zap.NewNop().Sugar()
}

// Sync flushes buffered log lines.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = logger.Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level.
func Debug(msg string, kv ...any) {
	current().Debugw(msg, kv...)
}

// Info logs at info level.
func Info(msg string, kv ...any) {
	current().Infow(msg, kv...)
}

// Warn logs at warn level.
func Warn(msg string, kv ...any) {
	current().Warnw(msg, kv...)
}

// Error logs err at error level.
func Error(msg string, err error, kv ...any) {
	current().Errorw(msg, append([]any{"err", err}, kv...)...)
}
