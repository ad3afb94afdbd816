package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/application"
	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/shopspring/decimal"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	orderService       = "order-service"
	useCaseOrderCreate = "order.create"
	spanPrefix         = "UC."
	publishPeer        = "outbox"
	publishTimeout     = 300 * time.Millisecond
)

var _ application.UseCase[CreateOrderInput, *CreateOrderResult] = (*CreateOrderUseCase)(nil)

// CreateOrderUseCase encapsulates the order creation workflow with observability hooks.
type CreateOrderUseCase struct {
	repo        domain.Repository
	customers   CustomerFinder
	products    ProductFinder
	idGenerator IDGenerator
	publisher   domoutbox.Publisher
	tel         observability.Observability

	// Base logger with fixed fields prebound (vendor must remain hidden).
	log observability.Logger
	// RED metrics (supplied via DI; do not instantiate inside methods).
	reqCounter   observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram observability.Histogram // usecase_duration_seconds{use_case}

	extCounter   observability.Counter   // external_requests_total{peer,endpoint,outcome}
	extHistogram observability.Histogram // external_request_duration_seconds{peer,endpoint}
}

// NewCreateOrderUseCase wires the dependencies required to execute the use case.
// customers and products may be nil to skip reference checks.
func NewCreateOrderUseCase(
	repo domain.Repository,
	customers CustomerFinder,
	products ProductFinder,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	tel observability.Observability,
) *CreateOrderUseCase {
	if tel == nil {
		tel = observability.Nop()
	}
	baseLog := tel.Logger().With(
		observability.F("service", orderService),
	)
	metricsProvider := tel.Metrics()

	return &CreateOrderUseCase{
		repo:         repo,
		customers:    customers,
		products:     products,
		idGenerator:  idGen,
		publisher:    publisher,
		tel:          tel,
		log:          baseLog,
		reqCounter:   metricsProvider.Counter(observability.MUsecaseRequests),
		durHistogram: metricsProvider.Histogram(observability.MUsecaseDuration),
		extCounter:   metricsProvider.Counter(observability.MExternalRequests),
		extHistogram: metricsProvider.Histogram(observability.MExternalRequestDuration),
	}
}

type CreateOrderItemInput struct {
	// ID is generated when empty.
	ID        string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type CreateOrderInput struct {
	// ID is generated when empty.
	ID         string
	CustomerID string
	Items      []CreateOrderItemInput
}

type CreateOrderResult struct {
	Order *domain.Order
}

// Execute performs the order creation flow.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderInput) (_ *CreateOrderResult, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(observability.F("use_case", useCaseOrderCreate))

	var orderID string
	var publishErr error

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+"CreateOrder",
		attribute.String("use_case", useCaseOrderCreate),
		attribute.String("order.customer_id", cmd.CustomerID),
		attribute.Int("order.item_count", len(cmd.Items)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		lat := time.Since(start).Seconds()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseOrderCreate),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(lat,
			observability.L("use_case", useCaseOrderCreate),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
		}
		if orderID != "" {
			fields = append(fields, observability.F("order_id", orderID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if publishErr != nil {
			fields = append(fields, observability.F("event_publish_error", publishErr.Error()))
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}

		logger.Info("use_case_done", fields...)
	}()

	logger.Debug("create_order_start",
		observability.F("customer_id", cmd.CustomerID),
		observability.F("items", len(cmd.Items)),
	)

	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		itemID := in.ID
		if itemID == "" {
			itemID = uc.idGenerator.NewID()
		}
		item, ierr := domain.NewOrderItem(itemID, in.Name, in.Price, in.ProductID, in.Quantity)
		if ierr != nil {
			outcome, statusText = "error", "ITEM_INVALID"
			return nil, fmt.Errorf("order: construct item: %w", ierr)
		}
		items = append(items, item)
	}

	orderID = cmd.ID
	if orderID == "" {
		orderID = uc.idGenerator.NewID()
	}
	entity, derr := domain.New(orderID, cmd.CustomerID, items)
	if derr != nil {
		outcome, statusText = "error", "DOMAIN_CONSTRUCTION_FAILED"
		return nil, fmt.Errorf("order: construct: %w", derr)
	}

	if rerr := checkReferences(ctx, uc.customers, uc.products, entity); rerr != nil {
		outcome, statusText = "error", "REFERENCE_INVALID"
		if errors.Is(rerr, ErrRepository) {
			statusText = "REFERENCE_LOOKUP_FAILED"
		}
		return nil, rerr
	}

	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return nil, err
	}
	if err := uc.repo.Create(ctx, entity); err != nil {
		outcome, statusText = "error", "REPO_CREATE_FAILED"
		if errors.Is(err, domain.ErrConflict) {
			statusText = "ORDER_CONFLICT"
		}
		return nil, wrapRepositoryError(err)
	}

	if uc.publisher != nil {
		publishErr = uc.publish(ctx, domain.NewOrderCreatedEvent(entity))
		if publishErr != nil {
			statusText = "EVENT_PUBLISH_FAILED"
			span.RecordError(publishErr)
		}
	}

	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.total", entity.Total().String()),
	)
	span.AddEvent("order.created",
		trace.WithAttributes(
			attribute.String("order.id", orderID),
		),
	)

	return &CreateOrderResult{Order: entity}, nil
}

// publish is best-effort: the order is already stored, so failures are recorded, not returned.
func (uc *CreateOrderUseCase) publish(ctx context.Context, evt domoutbox.Event) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	pubStart := time.Now()
	pubOutcome := "success"
	err := uc.publisher.Publish(pubCtx, evt)
	if err != nil {
		pubOutcome = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			pubOutcome = "canceled"
		}
	}

	uc.extCounter.Add(1,
		observability.L("peer", publishPeer),
		observability.L("endpoint", evt.EventName()),
		observability.L("outcome", pubOutcome),
	)
	uc.extHistogram.Observe(time.Since(pubStart).Seconds(),
		observability.L("peer", publishPeer),
		observability.L("endpoint", evt.EventName()),
	)
	return err
}
