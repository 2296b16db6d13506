package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rpbazaar/backoffice/internal/expenses"
	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/internal/orders"
	"github.com/rpbazaar/backoffice/internal/payments"
	"github.com/rpbazaar/backoffice/internal/products"
	"github.com/rpbazaar/backoffice/pkg/config"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type gormHealthChecker struct {
	db *gorm.DB
}

func (c gormHealthChecker) CheckHealth(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.OrderLineItem{},
		&models.Payment{},
		&models.LedgerEntry{},
		&models.Expense{},
		&models.Product{},
	))
	t.Cleanup(func() { _ = sqlDB.Close() })

	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.Disabled})
	tx := gormTxRunner{db: gdb}

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(gdb), nil)
	require.NoError(t, err)
	ordersSvc, err := orders.NewService(tx, orders.NewRepository(gdb), ledgerSvc, nil, logg, nil)
	require.NoError(t, err)
	paymentsSvc, err := payments.NewService(tx, payments.NewRepository(gdb), ledgerSvc, nil, logg, nil)
	require.NoError(t, err)
	expensesSvc, err := expenses.NewService(tx, expenses.NewRepository(gdb), ledgerSvc, nil, logg, nil)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.CORS.AllowedOrigins = []string{"*"}

	handler := NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       gormHealthChecker{db: gdb},
		Orders:   ordersSvc,
		Payments: paymentsSvc,
		Expenses: expensesSvc,
		Ledger:   ledgerSvc,
		Products: products.NewRepository(gdb),
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, gdb
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestSalesLifecycleOverHTTP(t *testing.T) {
	server, gdb := newTestServer(t)
	client := server.Client()

	customer := &models.Customer{Name: "Asha Perera", Email: "asha@example.com"}
	require.NoError(t, gdb.Create(customer).Error)

	// Create: 2 line items (3 @ 100, 1 @ 50) with discount 20, net 330.
	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/sales", map[string]any{
		"customerId":     customer.ID,
		"orderDate":      "2026-03-14T10:00:00Z",
		"totalAmount":    350,
		"discountAmount": 20,
		"paymentMethod":  "cash",
		"products": []map[string]any{
			{"productId": 1, "quantity": 3, "price": 100},
			{"productId": 2, "quantity": 1, "price": 50},
		},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "RP2026030001", body["orderNumber"])
	orderID := int(body["orderID"].(float64))

	// Partial payment.
	status, body = doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/sales/%d/payment", server.URL, orderID),
		map[string]any{"amount": 200, "paymentMethod": "cash"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Partial", body["paymentStatus"])

	// Second payment reaches the net amount.
	status, body = doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/sales/%d/payment", server.URL, orderID),
		map[string]any{"amount": 130, "paymentMethod": "card"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Paid", body["paymentStatus"])
	assert.Equal(t, "330", fmt.Sprintf("%v", body["totalPaid"]))

	status, body = doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/sales/%d/payments", server.URL, orderID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["payments"], 2)

	// The listing reflects paid and due amounts.
	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/sales", nil)
	require.Equal(t, http.StatusOK, status)
	sales := body["sales"].([]any)
	require.Len(t, sales, 1)
	sale := sales[0].(map[string]any)
	assert.Equal(t, "Paid", sale["paymentStatus"])
	assert.Equal(t, "Asha Perera", sale["userName"])

	// Cancel clears payments and books the refund.
	status, body = doJSON(t, client, http.MethodPatch,
		fmt.Sprintf("%s/api/sales/%d/status", server.URL, orderID),
		map[string]any{"status": "Cancelled"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body = doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/sales/%d/payments", server.URL, orderID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["payments"])

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/accounts", nil)
	require.Equal(t, http.StatusOK, status)
	accounts := body["accounts"].([]any)
	require.Len(t, accounts, 3)
	refund := accounts[2].(map[string]any)
	assert.Equal(t, "Refund", refund["account_name"])
	// 200 + 130 - 330 closes the order's position.
	assert.Equal(t, "0", fmt.Sprintf("%v", refund["balance"]))
}

func TestPaymentDeletionOverHTTP(t *testing.T) {
	server, gdb := newTestServer(t)
	client := server.Client()

	customer := &models.Customer{Name: "Nuwan Silva"}
	require.NoError(t, gdb.Create(customer).Error)

	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/sales", map[string]any{
		"customerId":  customer.ID,
		"totalAmount": 100,
		"products":    []map[string]any{{"productId": 1, "quantity": 1, "price": 100}},
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := int(body["orderID"].(float64))

	status, body = doJSON(t, client, http.MethodPost,
		fmt.Sprintf("%s/api/sales/%d/payment", server.URL, orderID),
		map[string]any{"amount": 100})
	require.Equal(t, http.StatusCreated, status)
	paymentID := int(body["paymentId"].(float64))
	assert.Equal(t, "Paid", body["paymentStatus"])

	status, body = doJSON(t, client, http.MethodDelete,
		fmt.Sprintf("%s/api/payments/%d", server.URL, paymentID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Unpaid", body["paymentStatus"])
	assert.Equal(t, "0", fmt.Sprintf("%v", body["remainingPaid"]))

	status, body = doJSON(t, client, http.MethodDelete,
		fmt.Sprintf("%s/api/payments/%d", server.URL, paymentID), nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestExpensesAndProductsOverHTTP(t *testing.T) {
	server, gdb := newTestServer(t)
	client := server.Client()

	product := &models.Product{NameEn: "Basmati Rice 5kg", RegularPrice: decimal.NewFromInt(1200), Status: "Active"}
	require.NoError(t, gdb.Create(product).Error)

	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/expenses", map[string]any{
		"category":   "Utilities",
		"amount":     75,
		"expenseFor": "March electricity",
	})
	require.Equal(t, http.StatusCreated, status)
	expense := body["expense"].(map[string]any)
	assert.Equal(t, "Utilities", expense["category"])

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/expenses", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["expenses"], 1)

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/accounts", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["accounts"], 1)

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["products"], 1)

	status, body = doJSON(t, client, http.MethodGet,
		fmt.Sprintf("%s/api/product_details/%d", server.URL, product.ID), nil)
	require.Equal(t, http.StatusOK, status)
	detail := body["product"].(map[string]any)
	assert.Equal(t, "Basmati Rice 5kg", detail["productEnName"])

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/api/product_details/999", nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	status, body := doJSON(t, client, http.MethodGet, server.URL+"/health/live", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "live", body["status"])

	status, body = doJSON(t, client, http.MethodGet, server.URL+"/health/ready", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
}

func TestValidationErrorsOverHTTP(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	// No products.
	status, body := doJSON(t, client, http.MethodPost, server.URL+"/api/sales", map[string]any{
		"customerId":  1,
		"totalAmount": 100,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	// Unknown status value.
	status, body = doJSON(t, client, http.MethodPatch, server.URL+"/api/sales/1/status",
		map[string]any{"status": "Shipped"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	// Non-numeric route parameter.
	status, body = doJSON(t, client, http.MethodDelete, server.URL+"/api/payments/abc", nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}
