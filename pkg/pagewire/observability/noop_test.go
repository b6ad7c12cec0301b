package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	// Must all be safe no-ops.
	m.RecordWidgetInstall(ctx, "nav", nil)
	m.RecordWidgetInstall(ctx, "nav", errors.New("x"))
	m.RecordReveal(ctx, "contact", time.Millisecond)
	m.RecordRestoration(ctx)
	m.RecordDraftSave(ctx, 10, nil)
}

func TestNoopSpanManager(t *testing.T) {
	var m SpanManager = NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := m.StartInitSpan(ctx, "ses-1")
	assert.Equal(t, ctx, newCtx, "noop leaves the context unchanged")
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())

	_, widgetSpan := m.StartWidgetSpan(ctx, "nav")
	assert.False(t, widgetSpan.IsRecording())

	_, revealSpan := m.StartRevealSpan(ctx, "contact")
	assert.False(t, revealSpan.IsRecording())

	m.EndSpanWithError(span, errors.New("ignored"))
	m.EndSpanWithError(nil, nil)
	m.AddSpanEvent(ctx, "ignored", attribute.String("k", "v"))
}
