// Package logger configures the structured logging used by the compiler and
// its commands.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// defaultLogger is nil until Init, which keeps library use silent.
var defaultLogger *slog.Logger

// LogLevel is the minimum level of messages that are written.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name as it appears in configuration.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Config holds logger configuration.
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	// LogFile, if set, receives logs instead of Output.
	LogFile string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs a logger with the given configuration as the default.
func Init(cfg Config) error {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		output = file
	}
	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "", "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	defaultLogger = slog.New(handler)
	return nil
}

// InitDev initializes debug-level text logging with source locations.
func InitDev() {
	_ = Init(Config{
		Level:     LevelDebug,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: true,
	})
}

// Discard removes the installed logger so that nothing is written.
func Discard() {
	defaultLogger = nil
}

// Logger returns the installed logger, or one that discards everything.
func Logger() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

// Info logs an info message.
func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Error logs an error message.
func Error(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Error(msg, args...)
	}
}

// Compiler helpers

// LogPhase logs the start of a compilation phase.
func LogPhase(phase, label string) {
	Debug("starting phase", "phase", phase, "source", label)
}

// LogPhaseComplete logs the end of a compilation phase.
func LogPhaseComplete(phase, label string) {
	Debug("completed phase", "phase", phase, "source", label)
}

// LogSemanticError logs a semantic error as it is recorded.
func LogSemanticError(line int, msg string) {
	Debug("semantic error", "line", line, "message", msg)
}

// LogFunctionStored logs a function body entering the function table.
func LogFunctionStored(name string, line int, replaced bool) {
	Debug("function stored", "function", name, "line", line, "replaced", replaced)
}

// LogCallSkipped logs a call to a function that was never defined.
func LogCallSkipped(name string) {
	Debug("skipping undefined callee", "function", name)
}

// LogOutput logs a written output file.
func LogOutput(path string, size int) {
	Info("wrote output", "path", path, "bytes", size)
}
