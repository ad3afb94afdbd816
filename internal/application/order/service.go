package order

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	domoutbox "github.com/Zhima-Mochi/minishop-checkout/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/shopspring/decimal"
)

// Service covers order reads and item changes on an existing order.
type Service struct {
	repo        domain.Repository
	products    ProductFinder
	idGenerator IDGenerator
	publisher   domoutbox.Publisher
	log         observability.Logger
}

func NewService(
	repo domain.Repository,
	products ProductFinder,
	idGen IDGenerator,
	publisher domoutbox.Publisher,
	logger observability.Logger,
) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:        repo,
		products:    products,
		idGenerator: idGen,
		publisher:   publisher,
		log:         logger.With(observability.F("component", "order_service")),
	}
}

type AddItemInput struct {
	// ID is generated when empty.
	ID        string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, validation.New("id", domain.MsgIDRequired)
	}
	o, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	return o, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, wrapRepositoryError(err)
	}
	return orders, nil
}

// AddItem appends a new item to a stored order and persists the result.
func (s *Service) AddItem(ctx context.Context, orderID string, in AddItemInput) (*domain.Order, error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("order_id", orderID))

	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	itemID := in.ID
	if itemID == "" {
		itemID = s.idGenerator.NewID()
	}
	item, err := domain.NewOrderItem(itemID, in.Name, in.Price, in.ProductID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("order: construct item: %w", err)
	}
	if err := o.AddItem(item); err != nil {
		return nil, fmt.Errorf("order: add item: %w", err)
	}
	if err := checkProduct(ctx, s.products, item.ProductID()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, o); err != nil {
		logger.Error("order_update_failed", observability.F("error", err))
		return nil, wrapRepositoryError(err)
	}

	s.publishItemsChanged(ctx, logger, o, domain.ChangeItemAdded, itemID)
	logger.Info("order_item_added",
		observability.F("item_id", itemID),
		observability.F("total", o.Total().String()),
	)
	return o, nil
}

// RemoveItem drops an item from a stored order. The last item cannot be removed.
func (s *Service) RemoveItem(ctx context.Context, orderID, itemID string) (*domain.Order, error) {
	logger := logctx.FromOr(ctx, s.log).With(observability.F("order_id", orderID))

	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.RemoveItem(itemID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("order: remove item: %w", err)
	}

	if err := s.repo.Update(ctx, o); err != nil {
		logger.Error("order_update_failed", observability.F("error", err))
		return nil, wrapRepositoryError(err)
	}

	s.publishItemsChanged(ctx, logger, o, domain.ChangeItemRemoved, itemID)
	logger.Info("order_item_removed",
		observability.F("item_id", itemID),
		observability.F("total", o.Total().String()),
	)
	return o, nil
}

func (s *Service) publishItemsChanged(ctx context.Context, logger observability.Logger, o *domain.Order, change, itemID string) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	evt := domain.NewOrderItemsChangedEvent(o, change, itemID)
	if err := s.publisher.Publish(pubCtx, evt); err != nil {
		logger.Warn("event_publish_failed",
			observability.F("event", evt.EventName()),
			observability.F("error", err.Error()),
		)
	}
}
