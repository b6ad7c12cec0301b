// Package observability provides production-grade observability features
// for pagewire: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every logging helper tolerates a nil logger, which is how the "silent"
// level is expressed.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel maps a configured level name to a slog.Level. The silent
// return is true for the "silent" level, which disables output entirely.
func ParseLevel(name string) (level slog.Level, silent bool, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, false, nil
	case "info", "":
		return slog.LevelInfo, false, nil
	case "warn", "warning":
		return slog.LevelWarn, false, nil
	case "error":
		return slog.LevelError, false, nil
	case "silent":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds a text logger at the named level on w (os.Stderr
// when w is nil). The "silent" level yields a nil logger, which every
// helper in this package treats as disabled.
func NewLogger(levelName string, w io.Writer) (*slog.Logger, error) {
	level, silent, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	if silent {
		return nil, nil
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// EnrichLogger adds session context to a logger.
// Returns a new logger with the session_id field.
func EnrichLogger(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("session_id", sessionID))
}

// LogInitStart logs the start of session initialization.
func LogInitStart(logger *slog.Logger, sessionID string) {
	if logger == nil {
		return
	}
	logger.Info("session initializing",
		slog.String("session_id", sessionID),
	)
}

// LogInitComplete logs successful initialization.
func LogInitComplete(logger *slog.Logger, sessionID string, durationMs float64, widgets int) {
	if logger == nil {
		return
	}
	logger.Info("session initialized",
		slog.String("session_id", sessionID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("widgets_installed", widgets),
	)
}

// LogInitSkipped logs a redundant Init on an initialized session.
func LogInitSkipped(logger *slog.Logger, sessionID string) {
	if logger == nil {
		return
	}
	logger.Warn("init skipped, session already initialized",
		slog.String("session_id", sessionID),
	)
}

// LogWidgetInstalled logs a successful widget install.
func LogWidgetInstalled(logger *slog.Logger, widget string) {
	if logger == nil {
		return
	}
	logger.Debug("widget installed",
		slog.String("widget", widget),
	)
}

// LogWidgetError logs a widget install failure (non-fatal).
func LogWidgetError(logger *slog.Logger, widget string, err error) {
	if logger == nil {
		return
	}
	logger.Error("widget install failed",
		slog.String("widget", widget),
		slog.String("error", err.Error()),
	)
}

// LogTeardown logs a completed teardown.
func LogTeardown(logger *slog.Logger, sessionID string, listeners int) {
	if logger == nil {
		return
	}
	logger.Info("session torn down",
		slog.String("session_id", sessionID),
		slog.Int("listeners_removed", listeners),
	)
}

// LogTeardownNoop logs a teardown with nothing to do.
func LogTeardownNoop(logger *slog.Logger, sessionID string) {
	if logger == nil {
		return
	}
	logger.Debug("teardown skipped, session not initialized",
		slog.String("session_id", sessionID),
	)
}

// LogReveal logs a reveal-and-focus.
func LogReveal(logger *slog.Logger, targetID string, scrollTop int) {
	if logger == nil {
		return
	}
	logger.Debug("target revealed",
		slog.String("target_id", targetID),
		slog.Int("scroll_top", scrollTop),
	)
}

// LogRestore logs a deferred marker restoration.
func LogRestore(logger *slog.Logger, targetID string) {
	if logger == nil {
		return
	}
	logger.Debug("focus marker restored",
		slog.String("target_id", targetID),
	)
}

// LogDraftSaved logs a persisted form draft.
func LogDraftSaved(logger *slog.Logger, key string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("draft saved",
		slog.String("key", key),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogDraftError logs a draft storage failure (non-fatal).
func LogDraftError(logger *slog.Logger, key string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("draft storage failed",
		slog.String("key", key),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
