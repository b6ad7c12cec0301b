package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the pagewire tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("pagewire")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartInitSpan starts a span for the whole session initialization.
	// Returns the context with span and the span itself.
	StartInitSpan(ctx context.Context, sessionID string) (context.Context, trace.Span)

	// StartWidgetSpan starts a span for one widget install.
	// The widget span should be a child of the init span.
	StartWidgetSpan(ctx context.Context, widget string) (context.Context, trace.Span)

	// StartRevealSpan starts a span for a reveal-and-focus.
	StartRevealSpan(ctx context.Context, targetID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartInitSpan starts a span for the session initialization.
func (m *otelSpanManager) StartInitSpan(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return StartInitSpan(ctx, sessionID)
}

// StartWidgetSpan starts a span for one widget install.
func (m *otelSpanManager) StartWidgetSpan(ctx context.Context, widget string) (context.Context, trace.Span) {
	return StartWidgetSpan(ctx, widget)
}

// StartRevealSpan starts a span for a reveal-and-focus.
func (m *otelSpanManager) StartRevealSpan(ctx context.Context, targetID string) (context.Context, trace.Span) {
	return StartRevealSpan(ctx, targetID)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartInitSpan starts a span for the session initialization.
// Uses the global OTel tracer.
func StartInitSpan(ctx context.Context, sessionID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pagewire.init",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartWidgetSpan starts a span for one widget install.
// Uses the global OTel tracer.
func StartWidgetSpan(ctx context.Context, widget string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pagewire.widget."+widget,
		trace.WithAttributes(
			attribute.String("widget.name", widget),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRevealSpan starts a span for a reveal-and-focus.
// Uses the global OTel tracer.
func StartRevealSpan(ctx context.Context, targetID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pagewire.reveal",
		trace.WithAttributes(
			attribute.String("target.id", targetID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
