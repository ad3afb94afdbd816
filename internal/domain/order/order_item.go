package order

import (
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/shopspring/decimal"
)

// OrderItem is a line of an Order. It has no mutators; a changed line is a new item.
type OrderItem struct {
	id        string
	name      string
	price     decimal.Decimal
	productID string
	quantity  int
}

func NewOrderItem(id, name string, price decimal.Decimal, productID string, quantity int) (OrderItem, error) {
	item := OrderItem{
		id:        id,
		name:      name,
		price:     price,
		productID: productID,
		quantity:  quantity,
	}
	if err := item.validate(); err != nil {
		return OrderItem{}, err
	}
	return item, nil
}

func (i OrderItem) validate() error {
	if i.id == "" {
		return validation.New("id", MsgIDRequired)
	}
	if i.price.IsNegative() {
		return validation.New("price", MsgPriceNegative)
	}
	if i.quantity <= 0 {
		return validation.New("quantity", MsgQuantityNotPositive)
	}
	return nil
}

func (i OrderItem) ID() string             { return i.id }
func (i OrderItem) Name() string           { return i.name }
func (i OrderItem) Price() decimal.Decimal { return i.price }
func (i OrderItem) ProductID() string      { return i.productID }
func (i OrderItem) Quantity() int          { return i.quantity }

// Subtotal is price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Equal compares items by value; prices are compared numerically.
func (i OrderItem) Equal(other OrderItem) bool {
	return i.id == other.id &&
		i.name == other.name &&
		i.price.Equal(other.price) &&
		i.productID == other.productID &&
		i.quantity == other.quantity
}
