package memory

import (
	"context"

	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
)

type ProductRepository struct {
	s *store[*domain.Product]
}

var _ domain.Repository = (*ProductRepository)(nil)

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		s: newStore(
			(*domain.Product).ID,
			(*domain.Product).Clone,
			func(p *domain.Product) bool { return p == nil },
			domain.ErrNotFound,
			domain.ErrConflict,
		),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.s.create(ctx, product)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.s.update(ctx, product)
}

func (r *ProductRepository) Find(ctx context.Context, id string) (*domain.Product, error) {
	return r.s.find(ctx, id)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.s.findAll(ctx)
}
