package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// newRecordingProvider installs an in-memory span recorder as the global provider.
func newRecordingProvider(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := setGlobalProvider(provider)
	t.Cleanup(func() { setGlobalProvider(prev) })
	return recorder
}

func TestStartSpan(t *testing.T) {
	recorder := newRecordingProvider(t)

	ctx, span := StartSpan(context.Background(), "erp.payment_vouchers.list",
		WithAttribute(SpanAttrPage, 2),
		WithAttribute(SpanAttrSearch, "HD001"),
	)
	require.NotNil(t, span)
	assert.NotEmpty(t, GetTraceID(ctx))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "erp.payment_vouchers.list", spans[0].Name())

	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.Int(SpanAttrPage, 2))
	assert.Contains(t, attrs, attribute.String(SpanAttrSearch, "HD001"))
}

func TestStartClientSpan(t *testing.T) {
	recorder := newRecordingProvider(t)

	_, span := StartClientSpan(context.Background(), "debit_notes", "create")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "erp.debit_notes.create", spans[0].Name())
}

func TestRecordError(t *testing.T) {
	recorder := newRecordingProvider(t)

	_, span := StartSpan(context.Background(), "erp.risks.list")
	RecordError(span, errors.New("upstream unavailable"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestRecordErrorNilSafe(t *testing.T) {
	// Must not panic on nil span or nil error
	RecordError(nil, errors.New("boom"))
	_, span := StartSpan(context.Background(), "noop")
	RecordError(span, nil)
	span.End()
}

func TestGetTraceIDWithoutSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected attribute.KeyValue
	}{
		{"string", "abc", attribute.String("k", "abc")},
		{"int", 42, attribute.Int("k", 42)},
		{"int64", int64(7), attribute.Int64("k", 7)},
		{"float64", 1.5, attribute.Float64("k", 1.5)},
		{"bool", true, attribute.Bool("k", true)},
		{"string slice", []string{"a", "b"}, attribute.StringSlice("k", []string{"a", "b"})},
		{"fallback", struct{}{}, attribute.String("k", "{}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toAttribute("k", tt.value))
		})
	}
}

func TestNewTracerProviderDisabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.EnableSpanProfiles())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
}

func TestSamplerSelection(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample(), sampler(1))
	assert.Equal(t, sdktrace.AlwaysSample(), sampler(1.5))
	assert.Equal(t, sdktrace.NeverSample(), sampler(0))
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25), sampler(0.25))
}

func TestNewProfilerDisabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop()) // idempotent
}

func TestNewProfilerRequiresAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "erp-console"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")
}

// setGlobalProvider swaps the global tracer provider, returning the previous one.
func setGlobalProvider(provider trace.TracerProvider) trace.TracerProvider {
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	return prev
}
