package controllers

import (
	"net/http"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/api/validators"
	"github.com/rpbazaar/backoffice/internal/payments"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// RecordPayment books a payment against an order and returns the state
// derived inside the booking transaction.
func RecordPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUintParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input payments.RecordInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Record(r.Context(), orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"paymentId":     out.PaymentID,
			"paymentStatus": out.PaymentStatus,
			"totalPaid":     out.TotalPaid,
		})
	}
}

// ListPayments returns an order's payments in booking order.
func ListPayments(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUintParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []models.Payment{}
		}
		responses.WriteSuccess(w, map[string]any{"payments": rows})
	}
}

// DeletePayment removes a payment and reports the order's re-derived state.
func DeletePayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paymentID, err := validators.ParseUintParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Delete(r.Context(), paymentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"paymentStatus": out.PaymentStatus,
			"remainingPaid": out.RemainingPaid,
		})
	}
}
