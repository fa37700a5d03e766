// Package router mounts every HTTP route of the service.
package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/app/di"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	platformhandler "topbrands_backend/internal/platform/http/handler"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/platform/logger"
	"topbrands_backend/internal/platform/metrics"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/ratelimiter"
)

// Options are the router settings taken from config.
type Options struct {
	JWTSecret      string
	CORSOrigins    []string
	MetricsEnabled bool
	// LoginRateLimit is the per-IP login attempts allowed each minute.
	LoginRateLimit int
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(h *di.Handlers, m *metrics.Manager, opt Options) *gin.Engine {
	apperror.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger())
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(cors.New(corsConfig(opt.CORSOrigins)))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if m != nil && opt.MetricsEnabled {
		r.GET("/metrics", m.Handler())
	}

	api := r.Group("/api")
	mountPublic(api, h)

	dashboard := api.Group("/dashboard")
	// ログイン（JWT 発行）
	loginLimiter := ratelimiter.NewRateLimiter(opt.LoginRateLimit, time.Minute)
	dashboard.POST("/auth/login", loginLimiter.Middleware(), h.Auth.Login)

	// 認証必須のルート。トークン発行後に無効化されたユーザーはRequireActiveUserで弾く
	staff := dashboard.Group("")
	staff.Use(jwtmw.AuthRequired(opt.JWTSecret), h.Auth.RequireActiveUser(), jwtmw.RequireStaff())
	mountDashboard(staff, h)

	admin := staff.Group("")
	admin.Use(jwtmw.RequireAdmin())
	{
		admin.DELETE("/years/:year", h.Years.Delete)
		admin.POST("/users", h.Auth.CreateUser)
		admin.GET("/users/:id", h.Auth.GetUser)
		admin.PUT("/users/:id", h.Auth.UpdateUser)
		admin.PATCH("/users/:id", h.Auth.UpdateUser)
		admin.DELETE("/users/:id", h.Auth.DeleteUser)
		admin.POST("/users/:id/reset_password", h.Auth.ResetPassword)
		admin.POST("/users/:id/toggle_active", h.Auth.ToggleActive)
		admin.POST("/system/cache/clear", h.System.ClearCache)
	}

	return r
}

func mountPublic(api *gin.RouterGroup, h *di.Handlers) {
	brands := api.Group("/brands")
	{
		brands.GET("", h.Brands.List)
		brands.GET("/top_10", h.Brands.Top10)
		brands.GET("/featured", h.Brands.Featured)
		brands.GET("/new_entries", h.Brands.NewEntries)
		brands.GET("/by_category", h.Brands.ByCategory)
		brands.GET("/most_popular", h.Brands.MostPopular)
		brands.GET("/:slug", h.Brands.Get)
		brands.POST("/:slug/increment_views", h.Brands.Increment(fields.CounterViews))
		brands.POST("/:slug/increment_likes", h.Brands.Increment(fields.CounterLikes))
		brands.POST("/:slug/increment_shares", h.Brands.Increment(fields.CounterShares))
	}

	blog := api.Group("/blog")
	{
		blog.GET("", h.Blog.List)
		blog.GET("/featured", h.Blog.Featured)
		blog.GET("/recent", h.Blog.Recent)
		blog.GET("/:slug", h.Blog.Get)
		blog.POST("/:slug/increment_views", h.Blog.Increment(fields.CounterViews))
		blog.POST("/:slug/increment_likes", h.Blog.Increment(fields.CounterLikes))
		blog.POST("/:slug/increment_shares", h.Blog.Increment(fields.CounterShares))
	}

	insights := api.Group("/insights")
	{
		insights.GET("", h.Insights.List)
		insights.GET("/featured", h.Insights.Featured)
		insights.GET("/by_type", h.Insights.ByType)
		insights.GET("/:slug", h.Insights.Get)
		insights.POST("/:slug/increment_views", h.Insights.Increment(fields.CounterViews))
		insights.POST("/:slug/increment_likes", h.Insights.Increment(fields.CounterLikes))
		insights.POST("/:slug/increment_shares", h.Insights.Increment(fields.CounterShares))
		insights.POST("/:slug/increment_downloads", h.Insights.Increment(fields.CounterDownloads))
	}

	api.GET("/categories", h.Catalog.ListPublic(catalog.KindCategory))
	api.GET("/industries", h.Catalog.ListPublic(catalog.KindIndustry))
	api.GET("/locations", h.Catalog.ListPublic(catalog.KindLocation))
	api.GET("/blog-categories", h.Catalog.ListPublic(catalog.KindBlogCategory))
	api.GET("/features", h.Catalog.ListPublic(catalog.KindCategory))

	api.GET("/years", h.Years.List)
	api.GET("/stats", h.Stats.Site)
	api.GET("/search", h.Search.Search)
}

func mountDashboard(g *gin.RouterGroup, h *di.Handlers) {
	g.GET("/auth/user", h.Auth.Me)
	g.GET("/stats", h.Stats.Dashboard)
	g.GET("/users", h.Auth.Users)
	g.GET("/system/health", h.System.Health)

	g.GET("/years", h.Years.List)
	g.POST("/years", h.Years.Create)
	g.GET("/years/:year", h.Years.Get)
	g.PUT("/years/:year", h.Years.Update)
	g.PATCH("/years/:year", h.Years.Update)
	g.POST("/years/:year/set_active", h.Years.SetActive)
	g.POST("/years/:year/duplicate", h.Years.Duplicate)
	g.GET("/migrations", h.Years.Migrations)

	crud(g.Group("/brands"), h.Brands.AdminList, h.Brands.AdminGet, h.Brands.Create, h.Brands.Update, h.Brands.Delete)
	crud(g.Group("/blog"), h.Blog.AdminList, h.Blog.AdminGet, h.Blog.Create, h.Blog.Update, h.Blog.Delete)
	crud(g.Group("/insights"), h.Insights.AdminList, h.Insights.AdminGet, h.Insights.Create, h.Insights.Update, h.Insights.Delete)
	crud(g.Group("/classifications/:kind"), h.Catalog.List, h.Catalog.Get, h.Catalog.Create, h.Catalog.Update, h.Catalog.Delete)
	crud(g.Group("/configurations"), h.Settings.List, h.Settings.Get, h.Settings.Create, h.Settings.Update, h.Settings.Delete)

	g.GET("/blog-tags", h.Tags.List)
	g.GET("/blog-tags/:id", h.Tags.Get)
}

// crud mounts the five standard routes on g, addressed by :id.
func crud(g *gin.RouterGroup, list, get, create, update, remove gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.PATCH("/:id", update)
	g.DELETE("/:id", remove)
}

// corsConfig allows the configured origins. Entries may themselves be
// comma-separated, as they arrive from a single env var.
func corsConfig(origins []string) cors.Config {
	var allowed []string
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				allowed = append(allowed, part)
			}
		}
	}
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", logger.HeaderRequestID},
		ExposeHeaders:    []string{logger.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = allowed
	return cfg
}
