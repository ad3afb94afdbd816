package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupStdoutExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{
		ServiceName: "minishop-checkout-test",
		Environment: "test",
		Exporter:    ExporterStdout,
		Writer:      &buf,
	})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "order.create")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "order.create")
	assert.Contains(t, buf.String(), "minishop-checkout-test")
}

func TestSetupNoneStillSamples(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{ServiceName: "svc"})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	assert.True(t, span.SpanContext().IsSampled())
}

func TestSetupRejectsUnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), Config{ServiceName: "svc", Exporter: "jaeger"})
	require.Error(t, err)
}
