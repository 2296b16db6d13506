package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/enums"
)

// Repository covers the order aggregate: the orders and order_items tables
// plus the payment_history reads and deletes that belong to order lifecycle
// transitions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) error
	CreateLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindByID(ctx context.Context, orderID uint) (*models.Order, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status enums.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID uint, status enums.PaymentStatus) error

	SumPaymentsByOrder(ctx context.Context, orderID uint) (decimal.Decimal, error)
	DeletePaymentsByOrder(ctx context.Context, orderID uint) (int64, error)

	ListSales(ctx context.Context) ([]SaleRow, error)
	ListLineItems(ctx context.Context, orderIDs []uint) ([]models.OrderLineItem, error)
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

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindByID(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

// UpdateOrderStatus assumes the order's existence was already checked; MySQL
// reports zero affected rows for a same-value update, so RowsAffected cannot
// distinguish "missing" from "unchanged" here.
func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uint, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("order_status", status).Error
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID uint, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("payment_status", status).Error
}

func (r *repository) SumPaymentsByOrder(ctx context.Context, orderID uint) (decimal.Decimal, error) {
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

func (r *repository) DeletePaymentsByOrder(ctx context.Context, orderID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.Payment{})
	return result.RowsAffected, result.Error
}

func (r *repository) ListSales(ctx context.Context) ([]SaleRow, error) {
	var rows []SaleRow
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.order_id, o.order_number, o.order_date, o.total_amount, o.discount_amount,
			o.order_status, o.payment_status, o.payment_method, o.shipping_address,
			o.plus_code, o.latitude, o.longitude, o.customer_id, o.created_at,
			COALESCE(u.user_name, '') AS customer_name,
			COALESCE(u.user_email, '') AS customer_email,
			COALESCE(u.user_phone, '') AS customer_phone,
			COALESCE(u.user_address, '') AS customer_address,
			COALESCE(p.paid_amount, 0) AS paid_amount`).
		Joins("LEFT JOIN users AS u ON u.user_id = o.customer_id").
		Joins(`LEFT JOIN (
			SELECT order_id, SUM(amount) AS paid_amount
			FROM payment_history
			GROUP BY order_id
		) AS p ON p.order_id = o.order_id`).
		Order("o.order_date DESC, o.order_id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListLineItems(ctx context.Context, orderIDs []uint) ([]models.OrderLineItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id ASC, id ASC").
		Find(&items).Error
	return items, err
}
