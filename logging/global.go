package logging

import (
	"io"
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger  *slog.Logger
	closers []io.Closer
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance. logFile may be empty
// to log to the console only.
func InitLogger(level, logFile string) {
	logger, closers := SetupLogger(level, logFile)
	DefaultLoggingService = &LoggingService{
		Logger:  logger,
		closers: closers,
	}
	slog.SetDefault(DefaultLoggingService.Logger)
}

// Close releases the log file opened by InitLogger, if any.
func Close() error {
	if DefaultLoggingService == nil {
		return nil
	}
	var firstErr error
	for _, c := range DefaultLoggingService.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	DefaultLoggingService.closers = nil
	return firstErr
}

// Package-level functions for direct access

// activeLogger returns the initialised logger, or a console fallback at level when
// InitLogger has not run yet.
func activeLogger(level slog.Level) *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return DefaultLoggingService.Logger
}

func Info(msg string, args ...any) {
	activeLogger(slog.LevelInfo).Info(msg, args...)
}

func Error(msg string, args ...any) {
	activeLogger(slog.LevelError).Error(msg, args...)
}

func Warn(msg string, args ...any) {
	activeLogger(slog.LevelWarn).Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	activeLogger(slog.LevelDebug).Debug(msg, args...)
}
