package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

// WriteSuccess renders the flat success envelope the legacy clients expect:
// {"success":true, ...fields}.
func WriteSuccess(w http.ResponseWriter, fields map[string]any) {
	WriteSuccessStatus(w, http.StatusOK, fields)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, fields map[string]any) {
	payload := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		payload[key] = value
	}
	payload["success"] = true
	writeJSON(w, status, payload)
}

// WriteError renders {"success":false,"error":"..."} with the HTTP status
// carried by the error's code metadata.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := map[string]any{
		"success": false,
		"error":   msg,
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload["details"] = details
		}
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"error_code": string(typed.Code()),
			"retryable":  meta.Retryable,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
