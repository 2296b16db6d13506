package expenses

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestService(t *testing.T) (Service, *gorm.DB, ledger.Repository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&models.Expense{}, &models.LedgerEntry{}))
	t.Cleanup(func() { _ = sqlDB.Close() })

	logg := logger.New(logger.Options{ServiceName: "expenses-test", Level: zerolog.Disabled})
	ledgerRepo := ledger.NewRepository(gdb)
	ledgerSvc, err := ledger.NewService(ledgerRepo, nil)
	require.NoError(t, err)

	svc, err := NewService(gormTxRunner{db: gdb}, NewRepository(gdb), ledgerSvc, nil, logg, nil)
	require.NoError(t, err)
	return svc, gdb, ledgerRepo
}

func TestCreateExpense(t *testing.T) {
	svc, _, ledgerRepo := newTestService(t)

	expense, err := svc.Create(context.Background(), CreateInput{
		Category:    "Utilities",
		Amount:      decimal.NewFromInt(75),
		ExpenseFor:  "March electricity",
		ExpenseDate: time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotZero(t, expense.ID)
	assert.Equal(t, "Active", expense.Status)

	entries, err := ledgerRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.AccountExpenses, entries[0].AccountName)
	assert.True(t, entries[0].Debit.Equal(decimal.NewFromInt(75)))
	assert.True(t, entries[0].Credit.IsZero())
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Amount: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.Create(context.Background(), CreateInput{
		Category: "Rent",
		Amount:   decimal.Zero,
	})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateExpenseRollsBackOnLedgerFailure(t *testing.T) {
	svc, gdb, _ := newTestService(t)

	require.NoError(t, gdb.Migrator().DropTable(&models.LedgerEntry{}))

	_, err := svc.Create(context.Background(), CreateInput{
		Category: "Rent",
		Amount:   decimal.NewFromInt(500),
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.Expense{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListExpenses(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i, category := range []string{"Rent", "Utilities"} {
		_, err := svc.Create(context.Background(), CreateInput{
			Category:    category,
			Amount:      decimal.NewFromInt(int64(100 + i)),
			ExpenseDate: time.Date(2026, time.March, 1+i, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Most recent first.
	assert.Equal(t, "Utilities", rows[0].Category)
	assert.Equal(t, "Rent", rows[1].Category)
}
