package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return errors.New("gormstore: customer is nil")
	}
	row := toCustomerModel(c)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err = translate(err, customer.ErrConflict, nil, nil); err != nil {
		return fmt.Errorf("gormstore: create customer %s: %w", c.ID(), err)
	}
	return nil
}

// Update overwrites every column including zero values, so clearing the active flag sticks.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return errors.New("gormstore: customer is nil")
	}
	row := toCustomerModel(c)
	res := r.db.WithContext(ctx).
		Model(&CustomerModel{ID: row.ID}).
		Select("name", "street", "number", "zipcode", "city", "active", "reward_points").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("gormstore: update customer %s: %w", c.ID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gormstore: update customer %s: %w", c.ID(), customer.ErrNotFound)
	}
	return nil
}

func (r *CustomerRepository) Find(ctx context.Context, id string) (*customer.Customer, error) {
	var row CustomerModel
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if err = translate(err, nil, customer.ErrNotFound, nil); err != nil {
		return nil, fmt.Errorf("gormstore: find customer %s: %w", id, err)
	}
	return toCustomerDomain(row)
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	var rows []CustomerModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormstore: find customers: %w", err)
	}
	out := make([]*customer.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := toCustomerDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
