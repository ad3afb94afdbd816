package memory

import (
	"context"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
)

// OrderRepository is an in-process order.Repository.
type OrderRepository struct {
	s *store[*domain.Order]
}

var _ domain.Repository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		s: newStore(
			(*domain.Order).ID,
			(*domain.Order).Clone,
			func(o *domain.Order) bool { return o == nil },
			domain.ErrNotFound,
			domain.ErrConflict,
		),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.s.create(ctx, order)
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.s.update(ctx, order)
}

func (r *OrderRepository) Find(ctx context.Context, id string) (*domain.Order, error) {
	return r.s.find(ctx, id)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.s.findAll(ctx)
}
