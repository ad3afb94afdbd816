package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is emitted once an order and its items are stored.
type OrderCreatedEvent struct {
	OrderID    string
	CustomerID string
	Total      decimal.Decimal
	ItemCount  int
	OccurredAt time.Time
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

func (e OrderCreatedEvent) AggregateID() string { return e.OrderID }

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		Total:      o.Total(),
		ItemCount:  o.ItemCount(),
		OccurredAt: time.Now().UTC(),
	}
}

// OrderItemsChangedEvent is emitted after an item was added or removed and the order stored.
type OrderItemsChangedEvent struct {
	OrderID    string
	Change     string
	ItemID     string
	Total      decimal.Decimal
	ItemCount  int
	OccurredAt time.Time
}

const (
	ChangeItemAdded   = "item_added"
	ChangeItemRemoved = "item_removed"
)

func (OrderItemsChangedEvent) EventName() string { return "order.items_changed" }

func (e OrderItemsChangedEvent) AggregateID() string { return e.OrderID }

func NewOrderItemsChangedEvent(o *Order, change, itemID string) OrderItemsChangedEvent {
	return OrderItemsChangedEvent{
		OrderID:    o.ID(),
		Change:     change,
		ItemID:     itemID,
		Total:      o.Total(),
		ItemCount:  o.ItemCount(),
		OccurredAt: time.Now().UTC(),
	}
}
