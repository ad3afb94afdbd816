package product

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("product: not found")
	ErrConflict   = errors.New("product: already exists")
	ErrValidation = validation.ErrInvalid
)

const (
	MsgIDRequired       = "Id is required"
	MsgNameRequired     = "Name is required"
	MsgPriceNotPositive = "Price must be greater than 0"
)

type Product struct {
	id    string
	name  string
	price decimal.Decimal
}

func New(id, name string, price decimal.Decimal) (*Product, error) {
	p := &Product{id: id, name: name, price: price}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) validate() error {
	if p.id == "" {
		return validation.New("id", MsgIDRequired)
	}
	if p.name == "" {
		return validation.New("name", MsgNameRequired)
	}
	if !p.price.IsPositive() {
		return validation.New("price", MsgPriceNotPositive)
	}
	return nil
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }

func (p *Product) ChangeName(name string) error {
	if name == "" {
		return validation.New("name", MsgNameRequired)
	}
	p.name = name
	return nil
}

func (p *Product) ChangePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return validation.New("price", MsgPriceNotPositive)
	}
	p.price = price
	return nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
