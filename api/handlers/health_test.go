package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	healthy := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		checks         map[string]Pinger
		expectedStatus int
		expected       map[string]any
	}{
		{
			name:           "all healthy",
			checks:         map[string]Pinger{"database": healthy, "redis": healthy},
			expectedStatus: http.StatusOK,
			expected:       map[string]any{"database": "ok", "redis": "ok"},
		},
		{
			name:           "redis down",
			checks:         map[string]Pinger{"database": healthy, "redis": down},
			expectedStatus: http.StatusServiceUnavailable,
			expected:       map[string]any{"database": "ok", "redis": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.GET("/health", NewHealthHandler(tt.checks).GetHealth)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body["result"])
		})
	}
}
