package customer

import (
	"context"
	"fmt"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
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
		log:         logger.With(observability.F("component", "customer_service")),
	}
}

type AddressInput struct {
	Street string
	Number int
	Zip    string
	City   string
}

func (in AddressInput) build() (domain.Address, error) {
	return domain.NewAddress(in.Street, in.Number, in.Zip, in.City)
}

type CreateInput struct {
	// ID is generated when empty.
	ID      string
	Name    string
	Address *AddressInput
	// Activate requires Address.
	Activate bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Customer, error) {
	logger := logctx.FromOr(ctx, s.log)

	id := in.ID
	if id == "" {
		id = s.idGenerator.NewID()
	}
	c, err := domain.New(id, in.Name)
	if err != nil {
		return nil, fmt.Errorf("customer: construct: %w", err)
	}
	if in.Address != nil {
		addr, err := in.Address.build()
		if err != nil {
			return nil, fmt.Errorf("customer: address: %w", err)
		}
		c.ChangeAddress(addr)
	}
	if in.Activate {
		if err := c.Activate(); err != nil {
			return nil, fmt.Errorf("customer: activate: %w", err)
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		logger.Error("customer_create_failed", observability.F("customer_id", id), observability.F("error", err))
		return nil, fmt.Errorf("customer: create: %w", err)
	}
	logger.Info("customer_created", observability.F("customer_id", id), observability.F("active", c.IsActive()))
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer: get: %w", err)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer: list: %w", err)
	}
	return all, nil
}

func (s *Service) ChangeAddress(ctx context.Context, id string, in AddressInput) (*domain.Customer, error) {
	addr, err := in.build()
	if err != nil {
		return nil, fmt.Errorf("customer: address: %w", err)
	}
	return s.mutate(ctx, id, "customer_address_changed", func(c *domain.Customer) error {
		c.ChangeAddress(addr)
		return nil
	})
}

func (s *Service) Activate(ctx context.Context, id string) (*domain.Customer, error) {
	return s.mutate(ctx, id, "customer_activated", (*domain.Customer).Activate)
}

// mutate loads, applies fn and stores the customer; nothing is stored when fn fails.
func (s *Service) mutate(ctx context.Context, id, event string, fn func(*domain.Customer) error) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, fmt.Errorf("customer: %s: %w", event, err)
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("customer: update: %w", err)
	}
	logctx.FromOr(ctx, s.log).Info(event, observability.F("customer_id", id))
	return c, nil
}
