package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

var _ product.Repository = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p == nil {
		return errors.New("gormstore: product is nil")
	}
	row := toProductModel(p)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err = translate(err, product.ErrConflict, nil, nil); err != nil {
		return fmt.Errorf("gormstore: create product %s: %w", p.ID(), err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	if p == nil {
		return errors.New("gormstore: product is nil")
	}
	row := toProductModel(p)
	res := r.db.WithContext(ctx).
		Model(&ProductModel{ID: row.ID}).
		Select("name", "price").
		Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("gormstore: update product %s: %w", p.ID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gormstore: update product %s: %w", p.ID(), product.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Find(ctx context.Context, id string) (*product.Product, error) {
	var row ProductModel
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if err = translate(err, nil, product.ErrNotFound, nil); err != nil {
		return nil, fmt.Errorf("gormstore: find product %s: %w", id, err)
	}
	return toProductDomain(row)
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	var rows []ProductModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormstore: find products: %w", err)
	}
	out := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := toProductDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
