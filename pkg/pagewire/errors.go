package pagewire

import (
	"errors"
	"fmt"
)

// Sentinel errors for session construction and initialization.
var (
	// ErrInvalidConfig indicates a recognized config key carried an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration value")

	// ErrNilDocument indicates the session was built without a document.
	ErrNilDocument = errors.New("document cannot be nil")

	// ErrNilScheduler indicates the session was built without a scheduler.
	ErrNilScheduler = errors.New("scheduler cannot be nil")
)

// ConfigError wraps a configuration validation failure with the key and
// value that caused it. Configuration errors are the only errors Init
// propagates; everything downstream is contained and logged.
type ConfigError struct {
	// Key is the config key that failed validation.
	Key string
	// Value is the offending value.
	Value any
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%v: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// WidgetError wraps a widget install failure. Widget errors never
// escape Init; they are logged and recorded, and installation moves on
// to the next widget.
type WidgetError struct {
	// Widget is the widget that failed ("nav", "anchors", "form", "carousel").
	Widget string
	// Op is the operation that failed (e.g., "install").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *WidgetError) Error() string {
	return fmt.Sprintf("widget %s: %s: %v", e.Widget, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *WidgetError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from a widget installer or a
// contained event handler. It includes the stack trace for debugging.
type PanicError struct {
	// Widget is the widget whose code panicked.
	Widget string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("widget %s panicked: %v", e.Widget, e.Value)
}
