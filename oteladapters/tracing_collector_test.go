package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/observed-collections-go/oteladapters"
)

func newTracer() (oteltrace.Tracer, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))

	return provider.Tracer("test"), exporter
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	ctx, spanCtx := collector.StartSpan(context.Background(), "observed.pre.add", map[string]string{"operation": "add"})
	require.NotNil(t, spanCtx)
	assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid(), "Context should carry the span")

	collector.FinishSpan(spanCtx, "ok", map[string]string{"status": "allowed"})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1, "Expected exactly one span")
	assert.Equal(t, "observed.pre.add", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "operation", "add")
	assertSpanHasAttribute(t, spans[0], "status", "allowed")
}

func Test_TracingCollector_StatusMapping(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	testCases := []struct {
		status              string
		expectedCode        codes.Code
		expectedDescription string
	}{
		{"ok", codes.Ok, ""},
		{"success", codes.Ok, ""},
		{"completed", codes.Ok, ""},
		{"error", codes.Error, "Operation failed"},
		{"failed", codes.Error, "Operation failed"},
		{"failure", codes.Error, "Operation failed"},
		{"vetoed", codes.Unset, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			exporter.Reset()

			_, spanCtx := collector.StartSpan(context.Background(), "test", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			spans := exporter.GetSpans()
			require.Len(t, spans, 1, "Expected exactly one span")
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.expectedDescription, spans[0].Status.Description)
		})
	}
}

func Test_TracingCollector_VetoedSpanIsMarked(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	_, spanCtx := collector.StartSpan(context.Background(), "observed.pre.clear", nil)
	collector.FinishSpan(spanCtx, "vetoed", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes, attribute.Bool("observed.vetoed", true))
}

func Test_TracingCollector_UnknownStatus(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	_, spanCtx := collector.StartSpan(context.Background(), "test", nil)
	collector.FinishSpan(spanCtx, "unknown_status", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assertSpanHasAttribute(t, spans[0], "status", "unknown_status")
}

func Test_TracingCollector_ForeignSpanContextIsIgnored(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	assert.NotPanics(t, func() {
		collector.FinishSpan(&foreignSpanContext{}, "ok", nil)
		collector.FinishSpan(nil, "ok", nil)
	})
	assert.Empty(t, exporter.GetSpans())
}

func Test_OTelSpanContext_Methods(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	_, spanCtx := collector.StartSpan(context.Background(), "test", nil)
	spanCtx.AddAttribute("element_count", "3")
	spanCtx.SetStatus("error")
	collector.FinishSpan(spanCtx, "error", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assertSpanHasAttribute(t, spans[0], "element_count", "3")
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func Test_TracingCollector_ChildSpans(t *testing.T) {
	tracer, exporter := newTracer()
	collector := oteladapters.NewTracingCollector(tracer)

	parentCtx, parent := collector.StartSpan(context.Background(), "parent", nil)
	_, child := collector.StartSpan(parentCtx, "child", nil)
	collector.FinishSpan(child, "ok", nil)
	collector.FinishSpan(parent, "ok", nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

type foreignSpanContext struct{}

func (*foreignSpanContext) SetStatus(string)            {}
func (*foreignSpanContext) AddAttribute(string, string) {}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if string(attr.Key) == key {
			assert.Equal(t, expectedValue, attr.Value.AsString(), "Attribute %s should have value %s", key, expectedValue)
			return
		}
	}

	t.Errorf("Attribute %s not found in span", key)
}
