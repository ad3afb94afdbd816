package oteltrace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewWithProviderRecordsSpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tr := NewWithProvider(tp, "")
	ctx, span := tr.Start(context.Background(), "UC.CreateOrder", attribute.String("order_id", "o1"))
	require.True(t, span.SpanContext().IsValid())
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "UC.CreateOrder", spans[0].Name())
	assert.Equal(t, defaultInstrumentation, spans[0].InstrumentationScope().Name)
	assert.Contains(t, spans[0].Attributes(), attribute.String("order_id", "o1"))
	assert.NotNil(t, ctx)
}

func TestNewWithNilProviderFallsBackToGlobal(t *testing.T) {
	tr := NewWithProvider(nil, "orders")
	_, span := tr.Start(context.Background(), "noop")
	defer span.End()
	assert.NotNil(t, span)
}
