package validators

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
)

// ParseUintParam reads a positive integer route parameter.
func ParseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s", name))
	}
	return uint(value), nil
}
