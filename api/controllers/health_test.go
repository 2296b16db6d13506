package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpbazaar/backoffice/pkg/config"
	"github.com/rpbazaar/backoffice/pkg/db"
	"github.com/rpbazaar/backoffice/pkg/logger"
)

type stubHealthChecker struct {
	calls int
	err   error
}

func (c *stubHealthChecker) CheckHealth(ctx context.Context) error {
	c.calls++
	return c.err
}

func healthTestDeps() (*config.Config, *logger.Logger) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{Level: zerolog.Disabled})
	return cfg, logg
}

func TestHealthReadyRunsHealthChecks(t *testing.T) {
	cfg, logg := healthTestDeps()
	checker := &stubHealthChecker{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	HealthReady(cfg, logg, map[string]db.HealthChecker{"database": checker})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, checker.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ready", body["status"])
}

func TestHealthReadyNamesFailedDependency(t *testing.T) {
	cfg, logg := healthTestDeps()
	failing := &stubHealthChecker{err: errors.New("connection refused")}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	HealthReady(cfg, logg, map[string]db.HealthChecker{
		"database": failing,
		"nil-dep":  nil,
	})(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, failing.calls)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}
