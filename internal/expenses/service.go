package expenses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/events"
	"github.com/rpbazaar/backoffice/pkg/logger"
	"github.com/rpbazaar/backoffice/pkg/metrics"
)

// CreateInput registers one cost entry.
type CreateInput struct {
	Category    string          `json:"category" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ExpenseFor  string          `json:"expenseFor"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
}

// Service records expenses together with their ledger debit.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Expense, error)
	List(ctx context.Context) ([]models.Expense, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx       txRunner
	repo     Repository
	ledger   ledger.Service
	notifier events.Notifier
	logger   *logger.Logger
	metrics  *metrics.MoneyOpMetrics
}

// NewService wires the expense service. The notifier may be nil, in which
// case no events are emitted.
func NewService(
	tx txRunner,
	repo Repository,
	ledgerSvc ledger.Service,
	notifier events.Notifier,
	logg *logger.Logger,
	m *metrics.MoneyOpMetrics,
) (Service, error) {
	if tx == nil || repo == nil || ledgerSvc == nil || logg == nil {
		return nil, errors.New("expenses: missing dependency")
	}
	if notifier == nil {
		notifier = events.NopNotifier{}
	}
	return &service{
		tx:       tx,
		repo:     repo,
		ledger:   ledgerSvc,
		notifier: notifier,
		logger:   logg,
		metrics:  m,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Expense, error) {
	if input.Category == "" {
		s.metrics.IncFailure(metrics.OpExpenseCreate)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if !input.Amount.IsPositive() {
		s.metrics.IncFailure(metrics.OpExpenseCreate)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now().UTC()
	}

	expense := &models.Expense{
		Category:    input.Category,
		Amount:      input.Amount,
		ExpenseFor:  input.ExpenseFor,
		ExpenseDate: expenseDate,
		Reference:   input.Reference,
		Description: input.Description,
		Status:      "Active",
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, expense); err != nil {
			return db.WrapPersistence(err, "inserting expense")
		}
		_, err := s.ledger.Append(ctx, tx, ledger.AppendInput{
			AccountName: ledger.AccountExpenses,
			Debit:       input.Amount,
			Description: fmt.Sprintf("expense %s: %s", expense.Category, expense.ExpenseFor),
		})
		return err
	})
	if err != nil {
		s.metrics.IncFailure(metrics.OpExpenseCreate)
		return nil, err
	}

	s.logger.Info(ctx, "expense recorded")
	s.metrics.IncOperation(metrics.OpExpenseCreate)
	s.notifier.Notify(ctx, events.Event{
		Type: events.TypeExpenseRecorded,
		Data: expense,
	})
	return expense, nil
}

func (s *service) List(ctx context.Context) ([]models.Expense, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, db.WrapPersistence(err, "listing expenses")
	}
	return rows, nil
}
