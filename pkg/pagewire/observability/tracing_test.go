package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("pagewire")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func spanAttr(s tracetest.SpanStub, key attribute.Key) string {
	for _, attr := range s.Attributes {
		if attr.Key == key {
			return attr.Value.AsString()
		}
	}
	return ""
}

func TestStartInitSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx := context.Background()
	newCtx, span := StartInitSpan(ctx, "ses-123")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)

	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "pagewire.init", spans[0].Name)
	assert.Equal(t, "ses-123", spanAttr(spans[0], "session.id"))
}

func TestStartWidgetSpanIsChildOfInit(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, initSpan := StartInitSpan(context.Background(), "ses-1")
	_, widgetSpan := StartWidgetSpan(ctx, "nav")

	widgetSpan.End()
	initSpan.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	// Export order is end order: widget first.
	assert.Equal(t, "pagewire.widget.nav", spans[0].Name)
	assert.Equal(t, "nav", spanAttr(spans[0], "widget.name"))
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestStartRevealSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	_, span := StartRevealSpan(context.Background(), "contact")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "pagewire.reveal", spans[0].Name)
	assert.Equal(t, "contact", spanAttr(spans[0], "target.id"))
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()

		_, span := StartRevealSpan(context.Background(), "x")
		EndSpanWithError(span, errors.New("target gone"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "target gone", spans[0].Status.Description)
		require.Len(t, spans[0].Events, 1, "error recorded as event")
	})

	t.Run("sets ok status without error", func(t *testing.T) {
		exporter.Reset()

		_, span := StartRevealSpan(context.Background(), "x")
		EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("tolerates nil span", func(t *testing.T) {
		EndSpanWithError(nil, errors.New("x"))
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	ctx, span := StartInitSpan(context.Background(), "ses-1")
	AddSpanEvent(ctx, "widget skipped", attribute.String("widget", "carousel"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "widget skipped", spans[0].Events[0].Name)

	// Without a recording span in context this is a no-op.
	AddSpanEvent(context.Background(), "dropped")
}

func TestSpanManagerInterface(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	var m SpanManager = NewSpanManager()

	ctx, initSpan := m.StartInitSpan(context.Background(), "ses-9")
	_, widgetSpan := m.StartWidgetSpan(ctx, "form")
	m.EndSpanWithError(widgetSpan, nil)
	m.AddSpanEvent(ctx, "anchors bound")
	m.EndSpanWithError(initSpan, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "pagewire.widget.form", spans[0].Name)
	assert.Equal(t, "pagewire.init", spans[1].Name)
}
