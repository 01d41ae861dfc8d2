package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorlift/creatorlift-backend/pkg/config"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	return cfg
}

func TestHealthReadyAllUp(t *testing.T) {
	handler := HealthReady(testConfig(), nil, fakePinger{}, fakePinger{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"up"`)
	assert.Contains(t, rec.Body.String(), `"redis":"up"`)
}

func TestHealthReadyDependencyDown(t *testing.T) {
	handler := HealthReady(testConfig(), nil, fakePinger{err: errors.New("connection refused")}, fakePinger{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"down"`)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
}

func TestHealthReadySkipsAbsentDependencies(t *testing.T) {
	handler := HealthReady(testConfig(), nil, fakePinger{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"skipped"`)
}

func TestHealthLiveSetsEnvHeader(t *testing.T) {
	handler := HealthLive(testConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-CreatorLift-Env"))
}
