package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	domain "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
)

var (
	ErrConflict         = domain.ErrConflict
	ErrNotFound         = domain.ErrNotFound
	ErrItemNotFound     = domain.ErrItemNotFound
	ErrInvalidReference = domain.ErrInvalidReference
	ErrRepository       = errors.New("order: repository failure")
)

func wrapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, domain.ErrConflict):
		return ErrConflict
	case errors.Is(err, domain.ErrInvalidReference):
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}
}

// checkReferences verifies the customer and every distinct product exist.
// Either finder may be nil, in which case that reference is not checked.
func checkReferences(ctx context.Context, customers CustomerFinder, products ProductFinder, o *domain.Order) error {
	if customers != nil {
		if _, err := customers.Find(ctx, o.CustomerID()); err != nil {
			if errors.Is(err, customer.ErrNotFound) {
				return fmt.Errorf("%w: customer %s", ErrInvalidReference, o.CustomerID())
			}
			return fmt.Errorf("%w: %w", ErrRepository, err)
		}
	}
	if products == nil {
		return nil
	}
	seen := make(map[string]struct{}, o.ItemCount())
	for _, item := range o.Items() {
		if _, ok := seen[item.ProductID()]; ok {
			continue
		}
		seen[item.ProductID()] = struct{}{}
		if err := checkProduct(ctx, products, item.ProductID()); err != nil {
			return err
		}
	}
	return nil
}

func checkProduct(ctx context.Context, products ProductFinder, id string) error {
	if products == nil {
		return nil
	}
	if _, err := products.Find(ctx, id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return fmt.Errorf("%w: product %s", ErrInvalidReference, id)
		}
		return fmt.Errorf("%w: %w", ErrRepository, err)
	}
	return nil
}
