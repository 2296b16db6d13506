package payments

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
	"github.com/rpbazaar/backoffice/pkg/enums"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/events"
	"github.com/rpbazaar/backoffice/pkg/logger"
	"github.com/rpbazaar/backoffice/pkg/metrics"
)

// Service books and removes payments, keeping the owning order's payment
// status and the ledger in step within one transaction.
type Service interface {
	Record(ctx context.Context, orderID uint, input RecordInput) (*RecordOutput, error)
	Delete(ctx context.Context, paymentID uint) (*DeleteOutput, error)
	ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error)
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

// NewService wires the payment service. The notifier may be nil, in which
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
		return nil, errors.New("payments: missing dependency")
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

func (s *service) Record(ctx context.Context, orderID uint, input RecordInput) (*RecordOutput, error) {
	if !input.Amount.IsPositive() {
		s.metrics.IncFailure(metrics.OpPaymentRecord)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	var out RecordOutput
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
			}
			return db.WrapPersistence(err, "loading order")
		}

		payment := &models.Payment{
			OrderID:       orderID,
			Amount:        input.Amount,
			PaymentMethod: input.PaymentMethod,
			PaymentDate:   paymentDate,
			Note:          input.Note,
		}
		if err := repo.Create(ctx, payment); err != nil {
			return db.WrapPersistence(err, "inserting payment")
		}

		_, err = s.ledger.Append(ctx, tx, ledger.AppendInput{
			AccountName: ledger.AccountSales,
			Credit:      input.Amount,
			Description: fmt.Sprintf("payment for order %s via %s", order.OrderNumber, payment.PaymentMethod),
		})
		if err != nil {
			return err
		}

		totalPaid, err := repo.SumByOrder(ctx, orderID)
		if err != nil {
			return db.WrapPersistence(err, "summing payments")
		}

		status := derivePaymentStatus(totalPaid, order.NetAmount())
		if err := repo.UpdateOrderPaymentStatus(ctx, orderID, status); err != nil {
			return db.WrapPersistence(err, "updating payment status")
		}

		out = RecordOutput{
			PaymentID:     payment.ID,
			PaymentStatus: status,
			TotalPaid:     totalPaid,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(metrics.OpPaymentRecord)
		return nil, err
	}

	ctx = s.logger.WithOrderID(ctx, orderID)
	s.logger.Info(ctx, "payment recorded")
	s.metrics.IncOperation(metrics.OpPaymentRecord)
	s.notifier.Notify(ctx, events.Event{
		Type: events.TypePaymentRecorded,
		Data: out,
	})
	return &out, nil
}

func (s *service) Delete(ctx context.Context, paymentID uint) (*DeleteOutput, error) {
	var out DeleteOutput
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment, err := repo.FindByID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "payment not found")
			}
			return db.WrapPersistence(err, "loading payment")
		}

		order, err := repo.FindOrder(ctx, payment.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
			}
			return db.WrapPersistence(err, "loading order")
		}

		if err := repo.Delete(ctx, paymentID); err != nil {
			return db.WrapPersistence(err, "deleting payment")
		}

		_, err = s.ledger.Append(ctx, tx, ledger.AppendInput{
			AccountName: ledger.AccountSales,
			Debit:       payment.Amount,
			Description: fmt.Sprintf("payment deleted for order %s", order.OrderNumber),
		})
		if err != nil {
			return err
		}

		remaining, err := repo.SumByOrder(ctx, payment.OrderID)
		if err != nil {
			return db.WrapPersistence(err, "summing payments")
		}

		status := derivePaymentStatus(remaining, order.NetAmount())
		if err := repo.UpdateOrderPaymentStatus(ctx, payment.OrderID, status); err != nil {
			return db.WrapPersistence(err, "updating payment status")
		}

		out = DeleteOutput{
			OrderID:       payment.OrderID,
			PaymentStatus: status,
			RemainingPaid: remaining,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(metrics.OpPaymentDelete)
		return nil, err
	}

	ctx = s.logger.WithOrderID(ctx, out.OrderID)
	s.logger.Info(ctx, "payment deleted")
	s.metrics.IncOperation(metrics.OpPaymentDelete)
	s.notifier.Notify(ctx, events.Event{
		Type: events.TypePaymentDeleted,
		Data: out,
	})
	return &out, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error) {
	if _, err := s.repo.FindOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, db.WrapPersistence(err, "loading order")
	}
	rows, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, db.WrapPersistence(err, "listing payments")
	}
	return rows, nil
}

// derivePaymentStatus applies the payment thresholds against the order's net
// amount (total minus discount). Both recording and deletion use the same
// thresholds so repeated transitions stay consistent.
func derivePaymentStatus(totalPaid, orderNet decimal.Decimal) enums.PaymentStatus {
	switch {
	case totalPaid.GreaterThanOrEqual(orderNet):
		// A fully discounted order (net zero) counts as paid with no
		// payments on record.
		return enums.PaymentStatusPaid
	case totalPaid.IsPositive():
		return enums.PaymentStatusPartial
	default:
		return enums.PaymentStatusUnpaid
	}
}
