package expenses

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/pkg/db/models"
)

// Repository persists expense rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context) ([]models.Expense, error)
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

func (r *repository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repository) List(ctx context.Context) ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.WithContext(ctx).
		Order("expense_date DESC, expense_id DESC").
		Find(&rows).Error
	return rows, err
}
