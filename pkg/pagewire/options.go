package pagewire

import (
	"log/slog"

	"github.com/dmercer/pagewire/pkg/pagewire/observability"
	"github.com/dmercer/pagewire/pkg/pagewire/storage"
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithStore wires a persistent slot store for form drafts.
// Default: an in-memory store that lives as long as the session.
//
// Example:
//
//	store, _ := storage.NewSQLiteStore("./pagewire.db")
//	sess := pagewire.New(doc, sched, pagewire.WithStore(store))
func WithStore(store storage.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets the session logger. It takes precedence over the
// logger.level config key. A nil logger silences the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
		s.loggerFixed = true
	}
}

// WithMetrics wires a metrics recorder.
// Default: NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracing wires a span manager.
// Default: NoopSpanManager.
func WithTracing(m observability.SpanManager) Option {
	return func(s *Session) {
		if m != nil {
			s.spans = m
		}
	}
}
