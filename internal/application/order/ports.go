package order

import (
	"context"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
)

type IDGenerator interface {
	NewID() string
}

// CustomerFinder resolves the customer an order refers to.
type CustomerFinder interface {
	Find(ctx context.Context, id string) (*customer.Customer, error)
}

// ProductFinder resolves the products order items refer to.
type ProductFinder interface {
	Find(ctx context.Context, id string) (*product.Product, error)
}
