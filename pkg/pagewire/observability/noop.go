package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordWidgetInstall does nothing.
func (NoopMetrics) RecordWidgetInstall(_ context.Context, _ string, _ error) {}

// RecordReveal does nothing.
func (NoopMetrics) RecordReveal(_ context.Context, _ string, _ time.Duration) {}

// RecordRestoration does nothing.
func (NoopMetrics) RecordRestoration(_ context.Context) {}

// RecordDraftSave does nothing.
func (NoopMetrics) RecordDraftSave(_ context.Context, _ int64, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartInitSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartInitSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartWidgetSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartWidgetSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartRevealSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartRevealSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
