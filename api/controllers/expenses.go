package controllers

import (
	"net/http"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/api/validators"
	"github.com/rpbazaar/backoffice/internal/expenses"
	"github.com/rpbazaar/backoffice/pkg/db/models"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// CreateExpense records a cost entry together with its ledger debit.
func CreateExpense(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input expenses.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expense, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"expense": expense})
	}
}

// ListExpenses returns expenses, most recent first.
func ListExpenses(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []models.Expense{}
		}
		responses.WriteSuccess(w, map[string]any{"expenses": rows})
	}
}
