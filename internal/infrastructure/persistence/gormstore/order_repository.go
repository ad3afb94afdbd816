package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository stores orders in the orders and order_items tables.
type OrderRepository struct {
	db *gorm.DB
}

var _ order.Repository = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create writes the order row and all of its item rows in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return errors.New("gormstore: order is nil")
	}
	row := toOrderModel(o)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return err
		}
		return tx.Create(&row.Items).Error
	})
	if err = translate(err, order.ErrConflict, nil, order.ErrInvalidReference); err != nil {
		return fmt.Errorf("gormstore: create order %s: %w", o.ID(), err)
	}
	return nil
}

// Update rewrites customer and total, then replaces the order's item rows.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	if o == nil {
		return errors.New("gormstore: order is nil")
	}
	row := toOrderModel(o)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing OrderModel
		if err := tx.Select("id").Take(&existing, "id = ?", row.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&OrderModel{}).Where("id = ?", row.ID).Updates(map[string]any{
			"customer_id": row.CustomerID,
			"total":       row.Total,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", row.ID).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&row.Items).Error
	})
	if err = translate(err, order.ErrConflict, order.ErrNotFound, order.ErrInvalidReference); err != nil {
		return fmt.Errorf("gormstore: update order %s: %w", o.ID(), err)
	}
	return nil
}

func (r *OrderRepository) Find(ctx context.Context, id string) (*order.Order, error) {
	var row OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Take(&row, "id = ?", id).Error
	if err = translate(err, nil, order.ErrNotFound, nil); err != nil {
		return nil, fmt.Errorf("gormstore: find order %s: %w", id, err)
	}
	return toOrderDomain(row)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	var rows []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormstore: find orders: %w", err)
	}

	out := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := toOrderDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
