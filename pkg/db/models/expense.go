package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost entry. Creating one writes a matching debit ledger row in
// the same transaction.
type Expense struct {
	ID          uint            `gorm:"column:expense_id;primaryKey;autoIncrement" json:"expenseID"`
	Category    string          `gorm:"column:category;size:64;not null" json:"category"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	ExpenseFor  string          `gorm:"column:expense_for;size:128" json:"expenseFor"`
	ExpenseDate time.Time       `gorm:"column:expense_date;not null" json:"expenseDate"`
	Reference   string          `gorm:"column:reference;size:64" json:"reference"`
	Description string          `gorm:"column:description" json:"description"`
	Status      string          `gorm:"column:status;size:16;not null;default:'Active'" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps Expense onto the legacy expenses table.
func (Expense) TableName() string {
	return "expenses"
}
