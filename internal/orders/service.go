package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// uniqueOrderNumberKey is the index name the duplicate check matches against.
const uniqueOrderNumberKey = "uq_orders_order_number"

// Service exposes the order lifecycle: registration, status transitions
// including cancellation, and the sales listing.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error)
	UpdateStatus(ctx context.Context, orderID uint, input UpdateStatusInput) error
	Get(ctx context.Context, orderID uint) (*models.Order, error)
	List(ctx context.Context) ([]SaleRow, error)
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

// NewService wires the order service. The notifier may be nil, in which case
// no events are emitted.
func NewService(
	tx txRunner,
	repo Repository,
	ledgerSvc ledger.Service,
	notifier events.Notifier,
	logg *logger.Logger,
	m *metrics.MoneyOpMetrics,
) (Service, error) {
	if tx == nil || repo == nil || ledgerSvc == nil || logg == nil {
		return nil, errors.New("orders: missing dependency")
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

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error) {
	if err := validateCreateInput(input); err != nil {
		s.metrics.IncFailure(metrics.OpOrderCreate)
		return nil, err
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	var out CreateOrderOutput
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		number, err := NextOrderNumber(ctx, repo, orderDate)
		if err != nil {
			return db.WrapPersistence(err, "counting orders for number allocation")
		}

		order := &models.Order{
			OrderNumber:     number,
			OrderDate:       orderDate,
			TotalAmount:     input.TotalAmount,
			DiscountAmount:  input.DiscountAmount,
			OrderStatus:     enums.OrderStatusConfirmed,
			PaymentStatus:   enums.PaymentStatusUnpaid,
			PaymentMethod:   input.PaymentMethod,
			CustomerID:      input.CustomerID,
			ShippingAddress: input.ShippingAddress,
			PlusCode:        input.PlusCode,
			Latitude:        input.Latitude,
			Longitude:       input.Longitude,
		}
		if err := repo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, uniqueOrderNumberKey) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already allocated")
			}
			return db.WrapPersistence(err, "inserting order")
		}

		items := make([]models.OrderLineItem, 0, len(input.Products))
		for _, p := range input.Products {
			items = append(items, models.OrderLineItem{
				OrderID:   order.ID,
				ProductID: p.ProductID,
				Quantity:  p.Quantity,
				Price:     p.Price,
			})
		}
		if err := repo.CreateLineItems(ctx, items); err != nil {
			return db.WrapPersistence(err, "inserting order items")
		}

		out = CreateOrderOutput{OrderID: order.ID, OrderNumber: order.OrderNumber}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure(metrics.OpOrderCreate)
		return nil, err
	}

	ctx = s.logger.WithOrderNumber(ctx, out.OrderNumber)
	s.logger.Info(ctx, "order created")
	s.metrics.IncOperation(metrics.OpOrderCreate)
	s.notifier.Notify(ctx, events.Event{
		Type: events.TypeOrderCreated,
		Data: out,
	})
	return &out, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, input UpdateStatusInput) error {
	if !input.OrderStatus.IsValid() {
		s.metrics.IncFailure(metrics.OpOrderStatus)
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", input.OrderStatus))
	}

	var cancelled bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
			}
			return db.WrapPersistence(err, "loading order")
		}

		if err := repo.UpdateOrderStatus(ctx, orderID, input.OrderStatus); err != nil {
			return db.WrapPersistence(err, "updating order status")
		}

		switch {
		case input.OrderStatus == enums.OrderStatusCancelled && order.OrderStatus != enums.OrderStatusCancelled:
			cancelled = true
			return s.cancel(ctx, repo, tx, order)
		case input.OrderStatus != enums.OrderStatusCancelled && order.OrderStatus == enums.OrderStatusCancelled:
			// Leaving the cancelled state: payments were already removed,
			// so the order reverts to unpaid.
			if err := repo.UpdatePaymentStatus(ctx, orderID, enums.PaymentStatusUnpaid); err != nil {
				return db.WrapPersistence(err, "resetting payment status")
			}
		}
		return nil
	})
	if err != nil {
		op := metrics.OpOrderStatus
		if input.OrderStatus == enums.OrderStatusCancelled {
			op = metrics.OpOrderCancel
		}
		s.metrics.IncFailure(op)
		return err
	}

	ctx = s.logger.WithOrderID(ctx, orderID)
	if cancelled {
		s.logger.Info(ctx, "order cancelled")
		s.metrics.IncOperation(metrics.OpOrderCancel)
		s.notifier.Notify(ctx, events.Event{
			Type: events.TypeOrderCancelled,
			Data: map[string]any{"orderId": orderID},
		})
		return nil
	}
	s.logger.Info(ctx, "order status updated")
	s.metrics.IncOperation(metrics.OpOrderStatus)
	return nil
}

// cancel removes the order's payments and, when anything had been paid,
// books a single refund covering the full paid amount. Runs inside the
// caller's transaction.
func (s *service) cancel(ctx context.Context, repo Repository, tx *gorm.DB, order *models.Order) error {
	totalPaid, err := repo.SumPaymentsByOrder(ctx, order.ID)
	if err != nil {
		return db.WrapPersistence(err, "summing payments")
	}

	if _, err := repo.DeletePaymentsByOrder(ctx, order.ID); err != nil {
		return db.WrapPersistence(err, "deleting payments")
	}

	if totalPaid.IsPositive() {
		_, err := s.ledger.Append(ctx, tx, ledger.AppendInput{
			AccountName: ledger.AccountRefund,
			Debit:       totalPaid,
			Description: fmt.Sprintf("refund for cancelled order %s", order.OrderNumber),
		})
		if err != nil {
			return err
		}
	}

	if err := repo.UpdatePaymentStatus(ctx, order.ID, enums.PaymentStatusCancelled); err != nil {
		return db.WrapPersistence(err, "updating payment status")
	}
	return nil
}

func (s *service) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, db.WrapPersistence(err, "loading order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]SaleRow, error) {
	rows, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, db.WrapPersistence(err, "listing sales")
	}

	orderIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		orderIDs = append(orderIDs, row.OrderID)
	}
	items, err := s.repo.ListLineItems(ctx, orderIDs)
	if err != nil {
		return nil, db.WrapPersistence(err, "listing order items")
	}
	byOrder := make(map[uint][]models.OrderLineItem, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	for i := range rows {
		rows[i].Items = byOrder[rows[i].OrderID]
		rows[i].DueAmount = rows[i].TotalAmount.
			Sub(rows[i].DiscountAmount).
			Sub(rows[i].PaidAmount)
	}
	return rows, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if input.CustomerID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customerId is required")
	}
	if len(input.Products) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one product is required")
	}
	if input.TotalAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "totalAmount must not be negative")
	}
	if input.DiscountAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discountAmount must not be negative")
	}
	if input.DiscountAmount.GreaterThan(input.TotalAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discountAmount must not exceed totalAmount")
	}
	for i, p := range input.Products {
		if p.ProductID == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("products[%d].productId is required", i))
		}
		if p.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("products[%d].quantity must be positive", i))
		}
		if !p.Price.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("products[%d].price must be positive", i))
		}
	}
	return nil
}
