package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/enums"
)

// LineItemInput is one product line on an incoming order.
type LineItemInput struct {
	ProductID uint            `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

// CreateOrderInput carries everything needed to register a confirmed sale.
type CreateOrderInput struct {
	CustomerID      uint            `json:"customerId" validate:"required"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"required"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress string          `json:"shippingAddress"`
	PlusCode        string          `json:"plusCode"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	Products        []LineItemInput `json:"products" validate:"required,min=1,dive"`
}

// CreateOrderOutput is returned after a successful insert.
type CreateOrderOutput struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

// UpdateStatusInput changes the fulfilment status of an order.
type UpdateStatusInput struct {
	OrderStatus enums.OrderStatus `json:"orderStatus" validate:"required"`
}

// SaleRow is one order in the sales listing, flattened with its customer
// and payment aggregates the way the back-office screens consume it.
type SaleRow struct {
	OrderID         uint                `json:"orderId" gorm:"column:order_id"`
	OrderNumber     string              `json:"orderNumber" gorm:"column:order_number"`
	OrderDate       time.Time           `json:"orderDate" gorm:"column:order_date"`
	TotalAmount     decimal.Decimal     `json:"totalAmount" gorm:"column:total_amount"`
	DiscountAmount  decimal.Decimal     `json:"discountAmount" gorm:"column:discount_amount"`
	OrderStatus     enums.OrderStatus   `json:"orderStatus" gorm:"column:order_status"`
	PaymentStatus   enums.PaymentStatus `json:"paymentStatus" gorm:"column:payment_status"`
	PaymentMethod   string              `json:"paymentMethod" gorm:"column:payment_method"`
	ShippingAddress string              `json:"shippingAddress" gorm:"column:shipping_address"`
	PlusCode        string              `json:"plusCode" gorm:"column:plus_code"`
	Latitude        *float64            `json:"latitude" gorm:"column:latitude"`
	Longitude       *float64            `json:"longitude" gorm:"column:longitude"`
	CustomerID      uint                `json:"customerId" gorm:"column:customer_id"`
	CustomerName    string              `json:"userName" gorm:"column:customer_name"`
	CustomerEmail   string              `json:"userEmail" gorm:"column:customer_email"`
	CustomerPhone   string              `json:"userPhone" gorm:"column:customer_phone"`
	CustomerAddress string              `json:"userAddress" gorm:"column:customer_address"`
	PaidAmount      decimal.Decimal     `json:"paidAmount" gorm:"column:paid_amount"`
	DueAmount       decimal.Decimal     `json:"dueAmount" gorm:"-"`
	CreatedAt       time.Time           `json:"createdAt" gorm:"column:created_at"`

	Items []models.OrderLineItem `json:"items" gorm:"-"`
}
