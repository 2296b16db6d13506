package products

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
)

// Repository reads the catalog. This service never writes product rows.
type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, productID uint) (*models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a Repository bound to db.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("product_status = ?", "Active").
		Order("product_en_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, db.WrapPersistence(err, "listing products")
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, db.WrapPersistence(err, "loading product")
	}
	return &product, nil
}
