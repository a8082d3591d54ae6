package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_Health(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(failingPinger{}, nil, 0).Health(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedCheck  string
	}{
		{name: "database up", db: okPinger{}, expectedStatus: http.StatusOK, expectedCheck: "ok"},
		{name: "database down", db: failingPinger{}, expectedStatus: http.StatusServiceUnavailable, expectedCheck: "failed: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.db, nil, time.Second).Ready(w, httptest.NewRequest("GET", "/health/ready", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body struct {
				Data HealthStatus `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCheck, body.Data.Checks["database"])
			assert.NotContains(t, body.Data.Checks, "redis")
		})
	}
}

func TestRouter_ServesMetrics(t *testing.T) {
	router, _ := newTestRouter()
	do(t, router, "GET", "/health", nil)

	w := do(t, router, "GET", "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `yunta_http_requests_total{method="GET",route="/health",status="200"}`)
}
