package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineItem captures one product quantity within an order. The price is
// the unit price at order time, independent of later product price changes.
type OrderLineItem struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"column:order_id;not null;index" json:"orderID"`
	ProductID uint            `gorm:"column:product_id;not null" json:"productID"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps OrderLineItem onto the legacy order_items table.
func (OrderLineItem) TableName() string {
	return "order_items"
}

// LineTotal is quantity times captured unit price.
func (i OrderLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
