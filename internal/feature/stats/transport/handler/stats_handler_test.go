package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/stats/transport/handler"
	"topbrands_backend/internal/feature/stats/usecase"
	years "topbrands_backend/internal/feature/years/domain/entity"
	jwtmw "topbrands_backend/internal/platform/jwt"
)

// mockStatsUsecase はStatsUsecaseインターフェースのモック実装です。
type mockStatsUsecase struct {
	year *int
}

func (m *mockStatsUsecase) Site(_ context.Context, year *int) (*usecase.SiteStats, error) {
	m.year = year
	return &usecase.SiteStats{
		Year:                  2024,
		Counts:                years.Counts{Brands: 50, BlogPosts: 4, Insights: 2},
		TotalCategories:       9,
		CombinedBrandValue:    "₦25.8T",
		AverageGrowth:         "+12.3%",
		TopPerformingCategory: "Telecom",
		LatestUpdate:          time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockStatsUsecase) Dashboard(context.Context) (*usecase.DashboardStats, error) {
	return &usecase.DashboardStats{CurrentYear: 2025, DashboardCounts: usecase.DashboardCounts{TotalYears: 2, RecentMigrations: 1}}, nil
}

// TestStatsHandler_Site は公開統計のJSON形式を検証します。
func TestStatsHandler_Site(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uc := &mockStatsUsecase{}
	r := gin.New()
	r.GET("/api/stats", handler.NewStatsHandler(uc).Site)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats?year=2024", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.year)
	assert.Equal(t, 2024, *uc.year)
	assert.JSONEq(t, `{
		"year": 2024,
		"total_brands": 50,
		"total_blog_posts": 4,
		"total_insights": 2,
		"total_categories": 9,
		"combined_brand_value": "₦25.8T",
		"average_growth": "+12.3%",
		"top_performing_category": "Telecom",
		"latest_update": "2024-12-01T00:00:00Z"
	}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats?year=last", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestStatsHandler_Dashboard はJWTのクレームから役割を決めることを検証します。
func TestStatsHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handler.NewStatsHandler(&mockStatsUsecase{})

	for _, admin := range []bool{true, false} {
		r := gin.New()
		r.GET("/api/dashboard/stats", func(c *gin.Context) {
			c.Set(jwtmw.ContextUsername, "ada")
			c.Set(jwtmw.ContextIsAdmin, admin)
		}, h.Dashboard)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body handler.DashboardStatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2025, body.CurrentYear)
		assert.Equal(t, "ada", body.Username)
		assert.Equal(t, int64(1), body.RecentMigrations)
		if admin {
			assert.Equal(t, "admin", body.UserRole)
		} else {
			assert.Equal(t, "editor", body.UserRole)
		}
	}
}
