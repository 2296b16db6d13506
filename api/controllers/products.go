package controllers

import (
	"net/http"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/api/validators"
	"github.com/rpbazaar/backoffice/internal/products"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// ListProducts returns the active catalog for price and name display.
func ListProducts(repo products.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []models.Product{}
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

// ProductDetails returns a single catalog entry.
func ProductDetails(repo products.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUintParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := repo.FindByID(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}
