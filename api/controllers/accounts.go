package controllers

import (
	"net/http"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/internal/ledger"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// ListAccounts returns the full ledger in chronological order, each entry
// annotated with the running balance up to and including it.
func ListAccounts(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		balanced := ledger.RunningBalance(entries)
		if balanced == nil {
			balanced = []ledger.BalancedEntry{}
		}
		responses.WriteSuccess(w, map[string]any{"accounts": balanced})
	}
}
