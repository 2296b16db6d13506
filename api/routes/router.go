package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpbazaar/backoffice/api/controllers"
	"github.com/rpbazaar/backoffice/api/middleware"
	"github.com/rpbazaar/backoffice/internal/expenses"
	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/internal/orders"
	"github.com/rpbazaar/backoffice/internal/payments"
	"github.com/rpbazaar/backoffice/internal/products"
	"github.com/rpbazaar/backoffice/pkg/config"
	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.HealthChecker
	Registry *prometheus.Registry

	Orders   orders.Service
	Payments payments.Service
	Expenses expenses.Service
	Ledger   ledger.Service
	Products products.Repository
}

// NewRouter mounts the legacy-compatible API surface plus the operational
// endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]db.HealthChecker{
			"database": deps.DB,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(deps.Orders, deps.Logger))
			r.Get("/", controllers.ListSales(deps.Orders, deps.Logger))
			r.Patch("/{id}/status", controllers.UpdateSaleStatus(deps.Orders, deps.Logger))
			r.Post("/{id}/payment", controllers.RecordPayment(deps.Payments, deps.Logger))
			r.Get("/{id}/payments", controllers.ListPayments(deps.Payments, deps.Logger))
		})

		r.Delete("/payments/{id}", controllers.DeletePayment(deps.Payments, deps.Logger))

		r.Get("/accounts", controllers.ListAccounts(deps.Ledger, deps.Logger))

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", controllers.CreateExpense(deps.Expenses, deps.Logger))
			r.Get("/", controllers.ListExpenses(deps.Expenses, deps.Logger))
		})

		r.Get("/products", controllers.ListProducts(deps.Products, deps.Logger))
		r.Get("/product_details/{id}", controllers.ProductDetails(deps.Products, deps.Logger))
	})

	return r
}
