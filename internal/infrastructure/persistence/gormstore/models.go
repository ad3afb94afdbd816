package gormstore

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerModel struct {
	ID           string `gorm:"column:id;primaryKey;size:64"`
	Name         string `gorm:"column:name;not null"`
	Street       string `gorm:"column:street"`
	Number       int    `gorm:"column:number"`
	Zipcode      string `gorm:"column:zipcode"`
	City         string `gorm:"column:city"`
	Active       bool   `gorm:"column:active;not null;default:false"`
	RewardPoints int    `gorm:"column:reward_points;not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CustomerModel) TableName() string { return "customers" }

type ProductModel struct {
	ID        string          `gorm:"column:id;primaryKey;size:64"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string { return "products" }

type OrderModel struct {
	ID         string           `gorm:"column:id;primaryKey;size:64"`
	CustomerID string           `gorm:"column:customer_id;not null;size:64;index"`
	Customer   *CustomerModel   `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Total      decimal.Decimal  `gorm:"column:total;type:numeric;not null"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is keyed by (order_id, id): item ids are unique within one order only.
type OrderItemModel struct {
	OrderID   string          `gorm:"column:order_id;primaryKey;size:64;uniqueIndex:idx_order_items_order_position,priority:1"`
	ID        string          `gorm:"column:id;primaryKey;size:64"`
	ProductID string          `gorm:"column:product_id;not null;size:64;index"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Position  int             `gorm:"column:position;not null;uniqueIndex:idx_order_items_order_position,priority:2"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// models lists every table in dependency order for AutoMigrate.
//
// Money columns are declared as plain numeric without a scale so every decimal the
// domain accepts is stored as is.
func models() []any {
	return []any{&CustomerModel{}, &ProductModel{}, &OrderModel{}, &OrderItemModel{}}
}
