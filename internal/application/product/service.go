package product

import (
	"context"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/shopspring/decimal"
)

type IDGenerator interface {
	NewID() string
}

type Service struct {
	repo        domain.Repository
	idGenerator IDGenerator
	log         observability.Logger
}

func NewService(repo domain.Repository, idGen IDGenerator, logger observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{
		repo:        repo,
		idGenerator: idGen,
		log:         logger.With(observability.F("component", "product_service")),
	}
}

type CreateInput struct {
	// ID is generated when empty.
	ID    string
	Name  string
	Price decimal.Decimal
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	id := in.ID
	if id == "" {
		id = s.idGenerator.NewID()
	}
	p, err := domain.New(id, in.Name, in.Price)
	if err != nil {
		return nil, fmt.Errorf("product: construct: %w", err)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("product: create: %w", err)
	}
	logctx.FromOr(ctx, s.log).Info("product_created",
		observability.F("product_id", id),
		observability.F("price", p.Price().String()),
	)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product: get: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("product: list: %w", err)
	}
	return all, nil
}

// ChangePrice updates the catalog price. Orders already placed keep the price they were created with.
func (s *Service) ChangePrice(ctx context.Context, id string, price decimal.Decimal) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	old := p.Price()
	if err := p.ChangePrice(price); err != nil {
		return nil, fmt.Errorf("product: change price: %w", err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("product: update: %w", err)
	}
	logctx.FromOr(ctx, s.log).Info("product_price_changed",
		observability.F("product_id", id),
		observability.F("old_price", old.String()),
		observability.F("price", price.String()),
	)
	return p, nil
}
