package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rpbazaar/backoffice/api/routes"
	"github.com/rpbazaar/backoffice/internal/expenses"
	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/internal/orders"
	"github.com/rpbazaar/backoffice/internal/payments"
	"github.com/rpbazaar/backoffice/internal/products"
	"github.com/rpbazaar/backoffice/pkg/config"
	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/events"
	"github.com/rpbazaar/backoffice/pkg/logger"
	"github.com/rpbazaar/backoffice/pkg/metrics"
	"github.com/rpbazaar/backoffice/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	moneyMetrics := metrics.NewMoneyOpMetrics(registry)
	notifier := events.NewLogNotifier(logg)

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(dbClient.DB()), moneyMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(
		dbClient,
		orders.NewRepository(dbClient.DB()),
		ledgerSvc,
		notifier,
		logg,
		moneyMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsSvc, err := payments.NewService(
		dbClient,
		payments.NewRepository(dbClient.DB()),
		ledgerSvc,
		notifier,
		logg,
		moneyMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	expensesSvc, err := expenses.NewService(
		dbClient,
		expenses.NewRepository(dbClient.DB()),
		ledgerSvc,
		notifier,
		logg,
		moneyMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create expenses service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Registry: registry,
			Orders:   ordersSvc,
			Payments: paymentsSvc,
			Expenses: expensesSvc,
			Ledger:   ledgerSvc,
			Products: products.NewRepository(dbClient.DB()),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
