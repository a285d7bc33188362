// Package logging builds the structured loggers used across the service.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Constants for log levels that match slog.Level values.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Type aliases for commonly used slog types.
type (
	Logger = *slog.Logger
	Level  = slog.Level
)

var logLevelStrToLevel = map[string]Level{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

// LoggerConfig holds configuration parameters for logging.
type LoggerConfig struct {
	// AppName is added to all log entries
	AppName string

	// Output is "stdout", "stderr", "discard" or a file path
	Output string

	// Level is the minimum level ("debug", "info", "warn", "error")
	Level string

	// JSON switches from text to JSON output
	JSON bool

	OutputHandle io.Writer
}

var (
	Group = slog.Group

	config     = LoggerConfig{Output: "stderr", Level: "info", OutputHandle: os.Stderr}
	configLock sync.Mutex
)

// Configure sets up global logging configuration for the application.
// Loggers created before the call keep their old settings.
func Configure(ctx context.Context, cfg LoggerConfig) error {
	if err := configure(cfg); err != nil {
		return err
	}

	GetLogger("logging").With(Group("config",
		"app", cfg.AppName,
		"output", cfg.Output,
		"level", cfg.Level,
		"json", cfg.JSON,
	)).DebugContext(ctx, "logging configured")

	return nil
}

func configure(cfg LoggerConfig) error {
	configLock.Lock()
	defer configLock.Unlock()

	if cfg.OutputHandle == nil {
		switch cfg.Output {
		case "", "discard":
			cfg.OutputHandle = io.Discard
		case "stdout":
			cfg.OutputHandle = os.Stdout
		case "stderr":
			cfg.OutputHandle = os.Stderr
		default:
			file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			cfg.OutputHandle = file
		}
	}

	config = cfg
	slog.SetLogLoggerLevel(ParseLevel(cfg.Level, LevelInfo))

	return nil
}

// GetLogger creates a new logger with the given name using the global configuration.
func GetLogger(name string) Logger {
	configLock.Lock()
	cfg := config
	configLock.Unlock()

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level, LevelInfo)}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.OutputHandle, opts)
	} else {
		handler = slog.NewTextHandler(cfg.OutputHandle, opts)
	}

	logger := slog.New(handler)
	if cfg.AppName != "" {
		logger = logger.With("app", cfg.AppName)
	}

	return logger.With("logger", name)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// GetLogLogger adapts a slog logger for code that expects a *log.Logger.
func GetLogLogger(logger Logger, level Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}

// ParseLevel maps a level name to a Level, returning fallback for unknown names.
func ParseLevel(levelStr string, fallback Level) Level {
	level, ok := logLevelStrToLevel[strings.ToLower(strings.TrimSpace(levelStr))]
	if !ok {
		return fallback
	}

	return level
}
