package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records pagewire metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordWidgetInstall records a widget install attempt and its error status.
	RecordWidgetInstall(ctx context.Context, widget string, err error)

	// RecordReveal records a reveal-and-focus with its duration.
	RecordReveal(ctx context.Context, targetID string, duration time.Duration)

	// RecordRestoration records a deferred focus-marker restoration.
	RecordRestoration(ctx context.Context)

	// RecordDraftSave records a draft persistence attempt.
	RecordDraftSave(ctx context.Context, sizeBytes int64, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	widgetInstalls metric.Int64Counter
	widgetErrors   metric.Int64Counter
	reveals        metric.Int64Counter
	revealLatency  metric.Float64Histogram
	restorations   metric.Int64Counter
	draftSaves     metric.Int64Counter
	draftErrors    metric.Int64Counter
	draftSize      metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("pagewire")

	widgetInstalls, err := meter.Int64Counter("pagewire.widget.installs",
		metric.WithDescription("Number of widget install attempts"),
	)
	if err != nil {
		return nil, err
	}

	widgetErrors, err := meter.Int64Counter("pagewire.widget.errors",
		metric.WithDescription("Number of widget install failures"),
	)
	if err != nil {
		return nil, err
	}

	reveals, err := meter.Int64Counter("pagewire.reveals",
		metric.WithDescription("Number of reveal-and-focus operations"),
	)
	if err != nil {
		return nil, err
	}

	revealLatency, err := meter.Float64Histogram("pagewire.reveal.latency_ms",
		metric.WithDescription("Reveal-and-focus latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	restorations, err := meter.Int64Counter("pagewire.restorations",
		metric.WithDescription("Number of deferred focus-marker restorations"),
	)
	if err != nil {
		return nil, err
	}

	draftSaves, err := meter.Int64Counter("pagewire.draft.saves",
		metric.WithDescription("Number of draft persistence attempts"),
	)
	if err != nil {
		return nil, err
	}

	draftErrors, err := meter.Int64Counter("pagewire.draft.errors",
		metric.WithDescription("Number of draft persistence failures"),
	)
	if err != nil {
		return nil, err
	}

	draftSize, err := meter.Int64Histogram("pagewire.draft.size_bytes",
		metric.WithDescription("Persisted draft size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		widgetInstalls: widgetInstalls,
		widgetErrors:   widgetErrors,
		reveals:        reveals,
		revealLatency:  revealLatency,
		restorations:   restorations,
		draftSaves:     draftSaves,
		draftErrors:    draftErrors,
		draftSize:      draftSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordWidgetInstall records a widget install attempt.
func (m *otelMetrics) RecordWidgetInstall(ctx context.Context, widget string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("widget", widget),
	}

	m.widgetInstalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.widgetErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordReveal records a reveal-and-focus.
func (m *otelMetrics) RecordReveal(ctx context.Context, targetID string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("target_id", targetID),
	}
	m.reveals.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.revealLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordRestoration records a deferred restoration.
func (m *otelMetrics) RecordRestoration(ctx context.Context) {
	m.restorations.Add(ctx, 1)
}

// RecordDraftSave records a draft persistence attempt.
func (m *otelMetrics) RecordDraftSave(ctx context.Context, sizeBytes int64, err error) {
	m.draftSaves.Add(ctx, 1)
	if err != nil {
		m.draftErrors.Add(ctx, 1)
		return
	}
	m.draftSize.Record(ctx, sizeBytes)
}
