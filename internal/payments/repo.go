package payments

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/enums"
)

// Repository covers payment_history plus the order reads and status writes a
// payment mutation needs within the same transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, paymentID uint) (*models.Payment, error)
	Delete(ctx context.Context, paymentID uint) error
	SumByOrder(ctx context.Context, orderID uint) (decimal.Decimal, error)
	ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error)

	FindOrder(ctx context.Context, orderID uint) (*models.Order, error)
	UpdateOrderPaymentStatus(ctx context.Context, orderID uint, status enums.PaymentStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindByID(ctx context.Context, paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) Delete(ctx context.Context, paymentID uint) error {
	result := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Delete(&models.Payment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SumByOrder(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("order_id = ?", orderID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID uint) ([]models.Payment, error) {
	var rows []models.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("payment_date DESC, payment_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderPaymentStatus assumes the order's existence was already checked;
// MySQL reports zero affected rows for a same-value update, so RowsAffected
// cannot distinguish "missing" from "unchanged" here.
func (r *repository) UpdateOrderPaymentStatus(ctx context.Context, orderID uint, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("payment_status", status).Error
}
