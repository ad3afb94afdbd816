package workerpresentation

import (
	"context"

	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// aggregateEvent is implemented by events that belong to a single order.
type aggregateEvent interface {
	AggregateID() string
}

// Subscriber decorates another Subscriber so every handler runs inside its own span
// with an event-scoped logger in the context.
type Subscriber struct {
	next domoutbox.Subscriber
	log  observability.Logger
	tel  observability.Observability
}

var _ domoutbox.Subscriber = (*Subscriber)(nil)

func NewSubscriber(next domoutbox.Subscriber, logger observability.Logger, tel observability.Observability) *Subscriber {
	if tel == nil {
		tel = observability.Nop()
	}
	if logger == nil {
		logger = tel.Logger()
	}
	return &Subscriber{next: next, log: logger, tel: tel}
}

func (s *Subscriber) Subscribe(eventName string, h domoutbox.Handler) {
	s.next.Subscribe(eventName, func(ctx context.Context, e domoutbox.Event) (err error) {
		attrs := map[string]string{"event": eventName}
		spanAttrs := []attribute.KeyValue{attribute.String("event", eventName)}
		if ae, ok := e.(aggregateEvent); ok {
			attrs["order_id"] = ae.AggregateID()
			spanAttrs = append(spanAttrs, attribute.String("order.id", ae.AggregateID()))
		}

		ctx, span := s.tel.Tracer().Start(ctx, "EVT."+eventName, spanAttrs...)
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "HANDLER_FAILED")
			} else {
				span.SetStatus(codes.Ok, "OK")
			}
			span.End()
		}()

		return h(WithEventContext(ctx, s.log, span.SpanContext(), attrs), e)
	})
}
