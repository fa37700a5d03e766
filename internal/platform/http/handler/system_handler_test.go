package handler

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

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

// TestSystemHandler_Health はDB・キャッシュの状態ごとのレスポンスを検証します。
func TestSystemHandler_Health(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		database       Check
		cache          Check
		expectedStatus int
		expectedBody   map[string]any
	}{
		{name: "all ok", database: ok, cache: ok, expectedStatus: http.StatusOK,
			expectedBody: map[string]any{"status": "healthy", "database": "ok", "cache": "ok"}},
		{name: "cache disabled", database: ok, cache: nil, expectedStatus: http.StatusOK,
			expectedBody: map[string]any{"status": "healthy", "database": "ok", "cache": "disabled"}},
		{name: "cache down", database: ok, cache: failing, expectedStatus: http.StatusOK,
			expectedBody: map[string]any{"status": "degraded", "database": "ok", "cache": "error"}},
		{name: "database down", database: failing, cache: ok, expectedStatus: http.StatusServiceUnavailable,
			expectedBody: map[string]any{"status": "unhealthy", "database": "error", "cache": "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.GET("/system/health", NewSystemHandler(tt.database, tt.cache, nil).Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/system/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			for k, v := range tt.expectedBody {
				assert.Equal(t, v, body[k], k)
			}
			assert.NotEmpty(t, body["timestamp"])
		})
	}
}

// TestSystemHandler_ClearCache はキャッシュ削除の成功・未設定・失敗を検証します。
func TestSystemHandler_ClearCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		clear          CacheClearer
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "cleared",
			clear:          func(context.Context) (int64, error) { return 4, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Cache cleared successfully","keys_removed":4}`,
		},
		{
			name:           "not configured",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Cache is not configured","keys_removed":0}`,
		},
		{
			name:           "redis error",
			clear:          func(context.Context) (int64, error) { return 0, errors.New("down") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"cache unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := gin.New()
			r.POST("/system/cache/clear", NewSystemHandler(ok, nil, tt.clear).ClearCache)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/system/cache/clear", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
