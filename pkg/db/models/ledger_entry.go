package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one append-only bookkeeping row. Exactly one of credit or
// debit is non-zero per row; rows are never updated or deleted.
type LedgerEntry struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountName string          `gorm:"column:account_name;size:64;not null" json:"account_name"`
	Credit      decimal.Decimal `gorm:"column:credit;type:decimal(12,2);not null;default:0" json:"credit"`
	Debit       decimal.Decimal `gorm:"column:debit;type:decimal(12,2);not null;default:0" json:"debit"`
	Description string          `gorm:"column:description" json:"description"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName maps LedgerEntry onto the legacy accounts table.
func (LedgerEntry) TableName() string {
	return "accounts"
}
