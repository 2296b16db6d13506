package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpbazaar/backoffice/pkg/enums"
)

// Order represents one customer purchase. The order number, date, totals and
// line items are fixed at creation; only the two status columns change later.
type Order struct {
	ID              uint                `gorm:"column:order_id;primaryKey;autoIncrement" json:"orderID"`
	OrderNumber     string              `gorm:"column:order_number;size:32;not null;uniqueIndex:uq_orders_order_number" json:"orderNumber"`
	OrderDate       time.Time           `gorm:"column:order_date;not null" json:"orderDate"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:decimal(12,2);not null" json:"totalAmount"`
	DiscountAmount  decimal.Decimal     `gorm:"column:discount_amount;type:decimal(12,2);not null;default:0" json:"discountAmount"`
	OrderStatus     enums.OrderStatus   `gorm:"column:order_status;size:16;not null;default:'Confirmed'" json:"orderStatus"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;size:16;not null;default:'Unpaid'" json:"paymentStatus"`
	PaymentMethod   string              `gorm:"column:payment_method;size:64" json:"paymentMethod"`
	CustomerID      uint                `gorm:"column:customer_id;not null" json:"customerID"`
	ShippingAddress string              `gorm:"column:shipping_address" json:"shippingAddress"`
	PlusCode        string              `gorm:"column:plus_code;size:32" json:"plusCode"`
	Latitude        *float64            `gorm:"column:latitude" json:"latitude"`
	Longitude       *float64            `gorm:"column:longitude" json:"longitude"`
	Items           []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps Order onto the legacy orders table.
func (Order) TableName() string {
	return "orders"
}

// NetAmount is the amount payments are reconciled against.
func (o Order) NetAmount() decimal.Decimal {
	return o.TotalAmount.Sub(o.DiscountAmount)
}
