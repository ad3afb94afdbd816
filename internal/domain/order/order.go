package order

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("order: not found")
	ErrConflict         = errors.New("order: already exists")
	ErrItemNotFound     = errors.New("order: item not found")
	// ErrInvalidReference means the customer or a product the order points at does not exist.
	ErrInvalidReference = errors.New("order: unknown customer or product")
	ErrValidation       = validation.ErrInvalid
)

const (
	MsgIDRequired          = "Id is required"
	MsgCustomerIDRequired  = "CustomerId is required"
	MsgItemsRequired       = "Items is required"
	MsgItemIDDuplicated    = "Item id must be unique"
	MsgQuantityNotPositive = "Quantity must be greater than 0"
	MsgPriceNegative       = "Price must be greater or equal to 0"
)

// Order is the aggregate root of the checkout context. It owns its items and refers
// to its customer by id only. A constructed Order always holds at least one item.
type Order struct {
	id         string
	customerID string
	items      []OrderItem
}

// New validates id, customerID and items in that order and stops at the first failure.
func New(id, customerID string, items []OrderItem) (*Order, error) {
	o := &Order{
		id:         id,
		customerID: customerID,
		items:      append([]OrderItem(nil), items...),
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Order) validate() error {
	if o.id == "" {
		return validation.New("id", MsgIDRequired)
	}
	if o.customerID == "" {
		return validation.New("customer_id", MsgCustomerIDRequired)
	}
	if len(o.items) == 0 {
		return validation.New("items", MsgItemsRequired)
	}
	seen := make(map[string]struct{}, len(o.items))
	for _, item := range o.items {
		if _, dup := seen[item.id]; dup {
			return validation.New("items", MsgItemIDDuplicated)
		}
		seen[item.id] = struct{}{}
	}
	return nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the items in insertion order.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

func (o *Order) ItemCount() int { return len(o.items) }

// Total is the sum of price × quantity over all items, recomputed on every call.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AddItem appends item. Item ids are unique within an order.
func (o *Order) AddItem(item OrderItem) error {
	if err := item.validate(); err != nil {
		return err
	}
	if o.indexOf(item.id) >= 0 {
		return validation.New("items", MsgItemIDDuplicated)
	}
	o.items = append(o.items, item)
	return nil
}

// RemoveItem drops the item with the given id. Removing the last item is rejected
// and leaves the order unchanged.
func (o *Order) RemoveItem(itemID string) error {
	idx := o.indexOf(itemID)
	if idx < 0 {
		return ErrItemNotFound
	}
	if len(o.items) == 1 {
		return validation.New("items", MsgItemsRequired)
	}
	items := make([]OrderItem, 0, len(o.items)-1)
	items = append(items, o.items[:idx]...)
	o.items = append(items, o.items[idx+1:]...)
	return nil
}

func (o *Order) indexOf(itemID string) int {
	for i, item := range o.items {
		if item.id == itemID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy; the copy shares no item storage with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	return &Order{
		id:         o.id,
		customerID: o.customerID,
		items:      o.Items(),
	}
}

// Equal reports whether both orders carry the same id, customer and item set,
// regardless of item order.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.id != other.id || o.customerID != other.customerID || len(o.items) != len(other.items) {
		return false
	}
	for _, item := range o.items {
		idx := other.indexOf(item.id)
		if idx < 0 || !item.Equal(other.items[idx]) {
			return false
		}
	}
	return true
}
