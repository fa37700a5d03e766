// Package handler は統計情報のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/stats/usecase"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// StatsUsecase は統計のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StatsUsecase interface {
	Site(ctx context.Context, year *int) (*usecase.SiteStats, error)
	Dashboard(ctx context.Context) (*usecase.DashboardStats, error)
}

// SiteStatsResponse は公開統計のレスポンスです。
type SiteStatsResponse struct {
	Year                  int       `json:"year"`
	TotalBrands           int64     `json:"total_brands"`
	TotalBlogPosts        int64     `json:"total_blog_posts"`
	TotalInsights         int64     `json:"total_insights"`
	TotalCategories       int64     `json:"total_categories"`
	CombinedBrandValue    string    `json:"combined_brand_value"`
	AverageGrowth         string    `json:"average_growth"`
	TopPerformingCategory string    `json:"top_performing_category"`
	LatestUpdate          time.Time `json:"latest_update"`
}

// DashboardStatsResponse は管理画面の統計レスポンスです。
type DashboardStatsResponse struct {
	CurrentYear      int    `json:"current_year"`
	TotalYears       int64  `json:"total_years"`
	PublishedYears   int64  `json:"published_years"`
	TotalBrands      int64  `json:"total_brands"`
	TotalBlogPosts   int64  `json:"total_blog_posts"`
	TotalInsights    int64  `json:"total_insights"`
	RecentMigrations int64  `json:"recent_migrations"`
	Username         string `json:"username"`
	UserRole         string `json:"user_role"`
}

// StatsHandler は統計リクエストを処理します。
type StatsHandler struct {
	uc StatsUsecase
}

// NewStatsHandler はStatsHandlerを生成します。
func NewStatsHandler(uc StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Site は指定年（省略時は有効な年）の統計を返します。GET /api/stats?year=2025
func (h *StatsHandler) Site(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	s, err := h.uc.Site(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, SiteStatsResponse{
		Year:                  s.Year,
		TotalBrands:           s.Counts.Brands,
		TotalBlogPosts:        s.Counts.BlogPosts,
		TotalInsights:         s.Counts.Insights,
		TotalCategories:       s.TotalCategories,
		CombinedBrandValue:    s.CombinedBrandValue,
		AverageGrowth:         s.AverageGrowth,
		TopPerformingCategory: s.TopPerformingCategory,
		LatestUpdate:          s.LatestUpdate,
	})
}

// Dashboard は管理画面の統計を返します。GET /api/dashboard/stats
func (h *StatsHandler) Dashboard(c *gin.Context) {
	s, err := h.uc.Dashboard(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	role := "editor"
	if c.GetBool(jwtmw.ContextIsAdmin) {
		role = "admin"
	}
	c.JSON(http.StatusOK, DashboardStatsResponse{
		CurrentYear:      s.CurrentYear,
		TotalYears:       s.TotalYears,
		PublishedYears:   s.PublishedYears,
		TotalBrands:      s.Brands,
		TotalBlogPosts:   s.BlogPosts,
		TotalInsights:    s.Insights,
		RecentMigrations: s.RecentMigrations,
		Username:         c.GetString(jwtmw.ContextUsername),
		UserRole:         role,
	})
}
