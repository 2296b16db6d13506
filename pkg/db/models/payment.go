package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one recorded payment event against an order.
type Payment struct {
	ID            uint            `gorm:"column:payment_id;primaryKey;autoIncrement" json:"paymentID"`
	OrderID       uint            `gorm:"column:order_id;not null;index" json:"orderID"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"column:payment_method;size:64" json:"paymentMethod"`
	PaymentDate   time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`
	Note          string          `gorm:"column:note" json:"note"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps Payment onto the legacy payment_history table.
func (Payment) TableName() string {
	return "payment_history"
}
