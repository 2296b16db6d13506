package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/metrics"
)

// Account names used by the money-moving operations.
const (
	AccountSales    = "Sales"
	AccountRefund   = "Refund"
	AccountExpenses = "Expenses"
)

// Service records ledger entries and serves the accounts report. Append
// always runs on the caller's transaction handle; the recorder never opens or
// closes a transaction of its own.
type Service interface {
	Append(ctx context.Context, tx *gorm.DB, input AppendInput) (*models.LedgerEntry, error)
	List(ctx context.Context) ([]models.LedgerEntry, error)
}

// AppendInput captures the immutable data one bookkeeping row requires.
// Exactly one of Credit/Debit should be non-zero; the recorder only rejects
// negative sides, which side carries the value is the caller's business.
type AppendInput struct {
	AccountName string
	Credit      decimal.Decimal
	Debit       decimal.Decimal
	Description string
}

type service struct {
	repo    Repository
	metrics *metrics.MoneyOpMetrics
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository, m *metrics.MoneyOpMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) Append(ctx context.Context, tx *gorm.DB, input AppendInput) (*models.LedgerEntry, error) {
	if input.AccountName == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if input.Credit.IsNegative() {
		return nil, fmt.Errorf("credit must not be negative")
	}
	if input.Debit.IsNegative() {
		return nil, fmt.Errorf("debit must not be negative")
	}

	entry := &models.LedgerEntry{
		AccountName: input.AccountName,
		Credit:      input.Credit,
		Debit:       input.Debit,
		Description: input.Description,
	}

	if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
		return nil, db.WrapPersistence(err, "appending ledger entry")
	}
	s.metrics.IncLedgerEntry(input.AccountName)
	return entry, nil
}

func (s *service) List(ctx context.Context) ([]models.LedgerEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, db.WrapPersistence(err, "listing ledger entries")
	}
	return entries, nil
}

// BalancedEntry is one ledger entry annotated with the running balance after
// applying it.
type BalancedEntry struct {
	models.LedgerEntry
	Balance decimal.Decimal `json:"balance"`
}

// RunningBalance folds credit minus debit over entries ordered by created_at
// ascending, seeded at zero. Reporting only; nothing stored is mutated.
func RunningBalance(entries []models.LedgerEntry) []BalancedEntry {
	out := make([]BalancedEntry, 0, len(entries))
	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.Credit).Sub(entry.Debit)
		out = append(out, BalancedEntry{LedgerEntry: entry, Balance: balance})
	}
	return out
}
