package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/osis/backend/internal/infrastructure/telemetry"
)

// setupTestTracer installs an in-memory span recorder as the global
// tracer provider and restores the previous one on cleanup
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func spanAttributes(span sdktrace.ReadOnlySpan) map[string]interface{} {
	attrs := make(map[string]interface{})
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	return attrs
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	t.Run("records name and default kind", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "confirmation.submit")
		span.End()

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "confirmation.submit", spans[0].Name())
		assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	})

	t.Run("applies options", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "notification.send",
			telemetry.WithAttribute("channel", "email"),
			telemetry.WithSpanKind(trace.SpanKindClient),
		)
		span.End()

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
		assert.Equal(t, "email", spanAttributes(spans[0])["channel"])
	})

	t.Run("service spans follow the service.method convention", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartServiceSpan(ctx, "trajectory", "initialize")
		span.End()

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "trajectory.initialize", spans[0].Name())
	})

	t.Run("child spans keep the parent's trace", func(t *testing.T) {
		sr := setupTestTracer(t)

		parentCtx, parent := telemetry.StartSpan(ctx, "jury.requestSignatures")
		_, child := telemetry.StartSpan(parentCtx, "jury.notifyMembers")
		child.End()
		parent.End()

		spans := sr.Ended()
		require.Len(t, spans, 2)
		assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
		assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	})
}

func TestSpanAttributes(t *testing.T) {
	ctx := context.Background()

	t.Run("typed values", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "activity.submit")
		telemetry.SetAttributes(span,
			"category", "CONFERENCE",
			"ects", 10,
			"with_children", true,
			"statuses", []string{"SOUMISE", "ACCEPTEE"},
		)
		span.End()

		attrs := spanAttributes(sr.Ended()[0])
		assert.Equal(t, "CONFERENCE", attrs["category"])
		assert.Equal(t, int64(10), attrs["ects"])
		assert.Equal(t, true, attrs["with_children"])
	})

	t.Run("stringers are rendered through String", func(t *testing.T) {
		sr := setupTestTracer(t)

		trajectoryID := uuid.New()
		_, span := telemetry.StartSpan(ctx, "trajectory.get")
		telemetry.SetAttribute(span, "trajectory_id", trajectoryID)
		span.End()

		attrs := spanAttributes(sr.Ended()[0])
		assert.Equal(t, trajectoryID.String(), attrs["trajectory_id"])
	})

	t.Run("an orphan key is dropped", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "activity.submit")
		telemetry.SetAttributes(span, "key1", "v1", "key2", "v2", "orphan")
		span.End()

		assert.Len(t, sr.Ended()[0].Attributes(), 2)
	})

	t.Run("a non-string key is skipped", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "activity.submit")
		telemetry.SetAttributes(span, "valid", "v", 123, "skipped")
		span.End()

		assert.Len(t, sr.Ended()[0].Attributes(), 1)
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	t.Run("marks the span and records the exception", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "confirmation.submit")
		telemetry.RecordError(span, errors.New("deadline exceeded"))
		span.End()

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "deadline exceeded", spans[0].Status().Description)
		require.NotEmpty(t, spans[0].Events())
		assert.Equal(t, "exception", spans[0].Events()[0].Name)
	})

	t.Run("nil error leaves the span untouched", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "confirmation.submit")
		telemetry.RecordError(span, nil)
		span.End()

		assert.NotEqual(t, codes.Error, sr.Ended()[0].Status().Code)
	})

	t.Run("SetOK records success", func(t *testing.T) {
		sr := setupTestTracer(t)

		_, span := telemetry.StartSpan(ctx, "confirmation.submit")
		telemetry.SetOK(span)
		span.End()

		assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
	})
}

func TestAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "supervision.approve")
	telemetry.AddEvent(span, "signature_recorded",
		"member_id", "member-123",
		"state", "APPROVED",
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "signature_recorded", events[0].Name)

	attrs := make(map[string]interface{})
	for _, kv := range events[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "member-123", attrs["member_id"])
	assert.Equal(t, "APPROVED", attrs["state"])
}

func TestSpanContextHelpers(t *testing.T) {
	setupTestTracer(t)
	ctx := context.Background()

	t.Run("SpanFromContext falls back to a nop span", func(t *testing.T) {
		assert.NotNil(t, telemetry.SpanFromContext(ctx))
		assert.Empty(t, telemetry.GetTraceID(ctx))
		assert.Empty(t, telemetry.GetSpanID(ctx))
	})

	t.Run("identifiers come from the active span", func(t *testing.T) {
		spanCtx, span := telemetry.StartSpan(ctx, "trajectory.get")
		defer span.End()

		assert.Len(t, telemetry.GetTraceID(spanCtx), 32)
		assert.Len(t, telemetry.GetSpanID(spanCtx), 16)
		assert.Equal(t, span.SpanContext().SpanID(),
			telemetry.SpanFromContext(spanCtx).SpanContext().SpanID())
	})

	t.Run("ContextWithSpan carries the span", func(t *testing.T) {
		_, span := telemetry.StartSpan(ctx, "trajectory.get")
		defer span.End()

		carried := telemetry.ContextWithSpan(ctx, span)
		assert.Equal(t, span.SpanContext().SpanID(),
			telemetry.SpanFromContext(carried).SpanContext().SpanID())
	})
}

func TestNilSpanHelpers(t *testing.T) {
	// None of the helpers may panic on a nil span
	telemetry.SetAttributes(nil, "key", "value")
	telemetry.SetAttribute(nil, "key", "value")
	telemetry.RecordError(nil, errors.New("ignored"))
	telemetry.SetOK(nil)
	telemetry.AddEvent(nil, "ignored", "key", "value")
}
