package controllers

import (
	"net/http"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/api/validators"
	"github.com/rpbazaar/backoffice/internal/orders"
	"github.com/rpbazaar/backoffice/pkg/enums"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// CreateSale registers a confirmed order with its line items.
func CreateSale(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input orders.CreateOrderInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"orderID":     out.OrderID,
			"orderNumber": out.OrderNumber,
		})
	}
}

// ListSales returns every order joined with its customer, line items and
// payment aggregates.
func ListSales(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []orders.SaleRow{}
		}
		responses.WriteSuccess(w, map[string]any{"sales": rows})
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateSaleStatus moves an order through its fulfilment workflow, including
// into and out of cancellation.
func UpdateSaleStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUintParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		if err := svc.UpdateStatus(r.Context(), orderID, orders.UpdateStatusInput{OrderStatus: status}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}
