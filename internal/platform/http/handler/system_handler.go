package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "topbrands_backend/internal/platform/jwt"
)

// Check は依存先の疎通確認関数です。nilの場合は「未設定」として扱います。
type Check func(ctx context.Context) error

// CacheClearer はキャッシュを全削除し、削除したキー数を返します。
type CacheClearer func(ctx context.Context) (int64, error)

// SystemHandler はダッシュボードのシステム系エンドポイントを処理します。
type SystemHandler struct {
	database Check
	cache    Check
	clear    CacheClearer
	now      func() time.Time
}

// NewSystemHandler はSystemHandlerを生成します。cacheとclearはRedis未設定時にnilを渡します。
func NewSystemHandler(database, cache Check, clear CacheClearer) *SystemHandler {
	return &SystemHandler{database: database, cache: cache, clear: clear, now: time.Now}
}

// Health はDBとキャッシュの状態を返します。
// DBが応答しない場合は503を返します。キャッシュ障害は degraded として200を返します。
//
// エンドポイント例:
// GET /api/dashboard/system/health → {"status": "healthy", "database": "ok", "cache": "ok", ...}
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	c.Header("Cache-Control", "no-store")

	status, code := "healthy", http.StatusOK
	database := checkStatus(ctx, h.database)
	if database != "ok" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	cache := checkStatus(ctx, h.cache)
	if cache != "ok" && cache != "disabled" && code == http.StatusOK {
		status = "degraded"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"cache":     cache,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// ClearCache はキャッシュを全削除します（管理者のみ）。POST /api/dashboard/system/cache/clear
func (h *SystemHandler) ClearCache(c *gin.Context) {
	if h.clear == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Cache is not configured", "keys_removed": 0})
		return
	}
	n, err := h.clear(c.Request.Context())
	if err != nil {
		slog.Error("cache clear failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "cache unavailable"})
		return
	}
	slog.Info("cache cleared", "keys_removed", n, "by", c.GetString(jwtmw.ContextUsername))
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully", "keys_removed": n})
}

func checkStatus(ctx context.Context, check Check) string {
	if check == nil {
		return "disabled"
	}
	if err := check(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		return "error"
	}
	return "ok"
}
