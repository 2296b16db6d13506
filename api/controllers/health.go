package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/rpbazaar/backoffice/api/responses"
	"github.com/rpbazaar/backoffice/pkg/config"
	"github.com/rpbazaar/backoffice/pkg/db"
	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RPBazaar-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{"status": "live"})
	}
}

// HealthReady runs every dependency's retrying health check and aggregates
// the failures, so a single probe response names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, checkers map[string]db.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RPBazaar-Env", cfg.App.Env)

		var errs error
		for name, checker := range checkers {
			if checker == nil {
				continue
			}
			if err := checker.CheckHealth(r.Context()); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		if errs != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependencies not ready"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready"})
	}
}
