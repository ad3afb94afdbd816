package memory

import (
	"context"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
)

type CustomerRepository struct {
	s *store[*domain.Customer]
}

var _ domain.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		s: newStore(
			(*domain.Customer).ID,
			(*domain.Customer).Clone,
			func(c *domain.Customer) bool { return c == nil },
			domain.ErrNotFound,
			domain.ErrConflict,
		),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.s.create(ctx, customer)
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.s.update(ctx, customer)
}

func (r *CustomerRepository) Find(ctx context.Context, id string) (*domain.Customer, error) {
	return r.s.find(ctx, id)
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	return r.s.findAll(ctx)
}
