package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/rpbazaar/backoffice/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]any{"orderNumber": "RP2026030001"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "RP2026030001", body["orderNumber"])
}

func TestWriteSuccessNilFields(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, nil)

	body := decode(t, rec)
	assert.Equal(t, map[string]any{"success": true}, body)
}

func TestWriteErrorExposesClientMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec,
		pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "order not found", body["error"])
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec,
		pkgerrors.New(pkgerrors.CodeInternal, "connection string leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["error"], "leaked")
}

func TestWriteErrorUntypedError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
}
