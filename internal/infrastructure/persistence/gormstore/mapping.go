package gormstore

import (
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
)

// toOrderModel flattens the aggregate into rows. Item position records insertion order
// and total is denormalised from Order.Total.
func toOrderModel(o *order.Order) OrderModel {
	items := o.Items()
	row := OrderModel{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Total:      o.Total(),
		Items:      make([]OrderItemModel, 0, len(items)),
	}
	for i, item := range items {
		row.Items = append(row.Items, OrderItemModel{
			ID:        item.ID(),
			OrderID:   o.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Position:  i,
		})
	}
	return row
}

// toOrderDomain rebuilds the aggregate through its constructors. Items must already
// be sorted by position. The stored total is ignored; Order.Total recomputes it.
func toOrderDomain(row OrderModel) (*order.Order, error) {
	items := make([]order.OrderItem, 0, len(row.Items))
	for _, r := range row.Items {
		item, err := order.NewOrderItem(r.ID, r.Name, r.Price, r.ProductID, r.Quantity)
		if err != nil {
			return nil, fmt.Errorf("gormstore: restore order %s item %s: %w", row.ID, r.ID, err)
		}
		items = append(items, item)
	}
	o, err := order.New(row.ID, row.CustomerID, items)
	if err != nil {
		return nil, fmt.Errorf("gormstore: restore order %s: %w", row.ID, err)
	}
	return o, nil
}

func toCustomerModel(c *customer.Customer) CustomerModel {
	row := CustomerModel{
		ID:           c.ID(),
		Name:         c.Name(),
		Active:       c.IsActive(),
		RewardPoints: c.RewardPoints(),
	}
	if addr, ok := c.Address(); ok {
		row.Street = addr.Street()
		row.Number = addr.Number()
		row.Zipcode = addr.Zip()
		row.City = addr.City()
	}
	return row
}

// toCustomerDomain treats an empty street as "no address".
func toCustomerDomain(row CustomerModel) (*customer.Customer, error) {
	var addr *customer.Address
	if row.Street != "" {
		a, err := customer.NewAddress(row.Street, row.Number, row.Zipcode, row.City)
		if err != nil {
			return nil, fmt.Errorf("gormstore: restore customer %s address: %w", row.ID, err)
		}
		addr = &a
	}
	c, err := customer.Restore(row.ID, row.Name, addr, row.Active, row.RewardPoints)
	if err != nil {
		return nil, fmt.Errorf("gormstore: restore customer %s: %w", row.ID, err)
	}
	return c, nil
}

func toProductModel(p *product.Product) ProductModel {
	return ProductModel{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

func toProductDomain(row ProductModel) (*product.Product, error) {
	p, err := product.New(row.ID, row.Name, row.Price)
	if err != nil {
		return nil, fmt.Errorf("gormstore: restore product %s: %w", row.ID, err)
	}
	return p, nil
}
