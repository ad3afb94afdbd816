package order

import (
	"context"
	"time"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
)

const workerService = "order-worker"

// Worker observes order events: one structured log line and one counter increment per event.
type Worker struct {
	subscriber domoutbox.Subscriber

	log          observability.Logger
	evtCounter   observability.Counter   // order_events_total{event,change}
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}
}

func NewWorker(subscriber domoutbox.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	m := tel.Metrics()
	return &Worker{
		subscriber:   subscriber,
		log:          tel.Logger().With(observability.F("service", workerService)),
		evtCounter:   m.Counter(observability.MOrderEvents),
		reqCounter:   m.Counter(observability.MUsecaseRequests),
		durHistogram: m.Histogram(observability.MUsecaseDuration),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domain.OrderCreatedEvent{}.EventName(), w.handleOrderCreated)
	w.subscriber.Subscribe(domain.OrderItemsChangedEvent{}.EventName(), w.handleItemsChanged)
}

func (w *Worker) handleOrderCreated(ctx context.Context, e domoutbox.Event) error {
	const useCase = "order.worker.order_created"
	evt, ok := e.(domain.OrderCreatedEvent)
	if !ok {
		w.count(useCase, "ignored")
		return nil
	}
	start := time.Now()

	logctx.FromOr(ctx, w.log).Info("order_event_observed",
		observability.F("use_case", useCase),
		observability.F("event", evt.EventName()),
		observability.F("order_id", evt.OrderID),
		observability.F("customer_id", evt.CustomerID),
		observability.F("total", evt.Total.String()),
		observability.F("item_count", evt.ItemCount),
		observability.F("lag_seconds", time.Since(evt.OccurredAt).Seconds()),
	)
	w.evtCounter.Add(1, observability.L("event", evt.EventName()))
	w.observe(useCase, "success", time.Since(start).Seconds())
	return nil
}

func (w *Worker) handleItemsChanged(ctx context.Context, e domoutbox.Event) error {
	const useCase = "order.worker.items_changed"
	evt, ok := e.(domain.OrderItemsChangedEvent)
	if !ok {
		w.count(useCase, "ignored")
		return nil
	}
	start := time.Now()

	logctx.FromOr(ctx, w.log).Info("order_event_observed",
		observability.F("use_case", useCase),
		observability.F("event", evt.EventName()),
		observability.F("order_id", evt.OrderID),
		observability.F("change", evt.Change),
		observability.F("item_id", evt.ItemID),
		observability.F("total", evt.Total.String()),
		observability.F("item_count", evt.ItemCount),
		observability.F("lag_seconds", time.Since(evt.OccurredAt).Seconds()),
	)
	w.evtCounter.Add(1,
		observability.L("event", evt.EventName()),
		observability.L("change", evt.Change),
	)
	w.observe(useCase, "success", time.Since(start).Seconds())
	return nil
}

func (w *Worker) count(useCase, outcome string) {
	w.reqCounter.Add(1,
		observability.L("use_case", useCase),
		observability.L("outcome", outcome),
	)
}

func (w *Worker) observe(useCase string, outcome string, latencySeconds float64) {
	w.count(useCase, outcome)
	w.durHistogram.Observe(latencySeconds,
		observability.L("use_case", useCase),
	)
}
