package logctx

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	observability.Logger
	fields []observability.Field
}

func (r *recordingLogger) With(fields ...observability.Field) observability.Logger {
	return &recordingLogger{Logger: observability.NopLogger(), fields: append(append([]observability.Field(nil), r.fields...), fields...)}
}

func TestFromOrFallsBack(t *testing.T) {
	fallback := &recordingLogger{Logger: observability.NopLogger()}

	assert.Same(t, fallback, FromOr(context.Background(), fallback))
	assert.NotNil(t, FromOr(context.Background(), nil))
}

func TestWithRoundTrip(t *testing.T) {
	logger := &recordingLogger{Logger: observability.NopLogger()}
	ctx := With(context.Background(), logger)

	assert.Same(t, logger, From(ctx))
	assert.Nil(t, From(context.Background()))
}

func TestEnrichStoresBoundLogger(t *testing.T) {
	base := &recordingLogger{Logger: observability.NopLogger()}

	ctx, logger := Enrich(context.Background(), base, observability.F("order_id", "o1"))

	got, ok := From(ctx).(*recordingLogger)
	assert.True(t, ok)
	assert.Same(t, logger, got)
	assert.Equal(t, []observability.Field{{Key: "order_id", Value: "o1"}}, got.fields)
}
