// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "topbrands_backend/internal/feature/auth/adapters"
	authentity "topbrands_backend/internal/feature/auth/domain/entity"
	authhandler "topbrands_backend/internal/feature/auth/transport/handler"
	authusecase "topbrands_backend/internal/feature/auth/usecase"
	blogadapters "topbrands_backend/internal/feature/blog/adapters"
	blogentity "topbrands_backend/internal/feature/blog/domain/entity"
	bloghandler "topbrands_backend/internal/feature/blog/transport/handler"
	blogusecase "topbrands_backend/internal/feature/blog/usecase"
	brandadapters "topbrands_backend/internal/feature/brands/adapters"
	brandentity "topbrands_backend/internal/feature/brands/domain/entity"
	brandhandler "topbrands_backend/internal/feature/brands/transport/handler"
	brandusecase "topbrands_backend/internal/feature/brands/usecase"
	catalogadapters "topbrands_backend/internal/feature/catalog/adapters"
	catalogentity "topbrands_backend/internal/feature/catalog/domain/entity"
	cataloghandler "topbrands_backend/internal/feature/catalog/transport/handler"
	catalogusecase "topbrands_backend/internal/feature/catalog/usecase"
	insightadapters "topbrands_backend/internal/feature/insights/adapters"
	insightentity "topbrands_backend/internal/feature/insights/domain/entity"
	insighthandler "topbrands_backend/internal/feature/insights/transport/handler"
	insightusecase "topbrands_backend/internal/feature/insights/usecase"
	searchhandler "topbrands_backend/internal/feature/search/transport/handler"
	searchusecase "topbrands_backend/internal/feature/search/usecase"
	settingsadapters "topbrands_backend/internal/feature/settings/adapters"
	settingsentity "topbrands_backend/internal/feature/settings/domain/entity"
	settingshandler "topbrands_backend/internal/feature/settings/transport/handler"
	settingsusecase "topbrands_backend/internal/feature/settings/usecase"
	statsadapters "topbrands_backend/internal/feature/stats/adapters"
	statshandler "topbrands_backend/internal/feature/stats/transport/handler"
	statsusecase "topbrands_backend/internal/feature/stats/usecase"
	yearadapters "topbrands_backend/internal/feature/years/adapters"
	yearentity "topbrands_backend/internal/feature/years/domain/entity"
	yearhandler "topbrands_backend/internal/feature/years/transport/handler"
	yearusecase "topbrands_backend/internal/feature/years/usecase"
	"topbrands_backend/internal/platform/cache"
	"topbrands_backend/internal/platform/config"
	platformhandler "topbrands_backend/internal/platform/http/handler"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/platform/metrics"
	"topbrands_backend/internal/shared/pagination"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&yearentity.YearRecord{},
		&yearentity.MigrationLog{},
		&catalogentity.Classification{},
		&brandentity.Brand{},
		&brandentity.Metric{},
		&brandentity.Achievement{},
		&brandentity.TimelineEvent{},
		&blogentity.Post{},
		&blogentity.Tag{},
		&insightentity.Insight{},
		&insightentity.Metric{},
		&insightentity.KeyFinding{},
		&authentity.User{},
		&settingsentity.Configuration{},
	}
}

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Years    *yearhandler.YearHandler
	Brands   *brandhandler.BrandHandler
	Blog     *bloghandler.PostHandler
	Tags     *bloghandler.TagHandler
	Insights *insighthandler.InsightHandler
	Catalog  *cataloghandler.CatalogHandler
	Search   *searchhandler.SearchHandler
	Stats    *statshandler.StatsHandler
	Auth     *authhandler.AuthHandler
	Settings *settingshandler.ConfigurationHandler
	System   *platformhandler.SystemHandler
}

// Years wires the year registry on its own so that commands other than the
// server (e.g. seeding) reuse the same usecase.
func Years(cfg *config.Config, db *gorm.DB) *yearusecase.YearUsecase {
	return yearusecase.NewYearUsecase(
		yearadapters.NewYearRepository(db),
		yearadapters.NewCountRepository(db),
		cfg.FallbackYear,
	)
}

// Auth wires the auth usecase.
func Auth(cfg *config.Config, db *gorm.DB) *authusecase.AuthUsecase {
	return authusecase.NewAuthUsecase(
		authadapters.NewUserRepository(db),
		jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration),
	)
}

// Settings wires the system configuration usecase.
func Settings(db *gorm.DB) *settingsusecase.ConfigurationUsecase {
	return settingsusecase.NewConfigurationUsecase(settingsadapters.NewConfigurationRepository(db))
}

// NewHandlers builds repositories, usecases and handlers. rdb may be nil,
// in which case classification lists are read straight from the database.
func NewHandlers(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Manager) *Handlers {
	limits := pagination.Limits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	// Repository
	classifications := cache.NewCachingClassificationRepository(
		rdb, cfg.CacheTTL, catalogadapters.NewClassificationRepository(db), cache.DefaultNamespace,
	).WithRecorder(m)

	// Usecase
	yearUC := Years(cfg, db)
	catalogUC := catalogusecase.NewCatalogUsecase(classifications)
	brandUC := brandusecase.NewBrandUsecase(brandadapters.NewBrandRepository(db), yearUC, catalogUC)
	postUC := blogusecase.NewPostUsecase(blogadapters.NewPostRepository(db), yearUC)
	insightUC := insightusecase.NewInsightUsecase(insightadapters.NewInsightRepository(db), yearUC)
	searchUC := searchusecase.NewSearchUsecase(brandUC, postUC, insightUC)
	statsUC := statsusecase.NewStatsUsecase(statsadapters.NewStatsRepository(db), yearUC)
	authUC := Auth(cfg, db)

	// Handler
	return &Handlers{
		Years:    yearhandler.NewYearHandler(yearUC),
		Brands:   brandhandler.NewBrandHandler(brandUC, limits),
		Blog:     bloghandler.NewPostHandler(postUC, limits),
		Tags:     bloghandler.NewTagHandler(blogusecase.NewTagUsecase(blogadapters.NewTagRepository(db))),
		Insights: insighthandler.NewInsightHandler(insightUC, limits),
		Catalog:  cataloghandler.NewCatalogHandler(catalogUC),
		Search:   searchhandler.NewSearchHandler(searchUC),
		Stats:    statshandler.NewStatsHandler(statsUC),
		Auth:     authhandler.NewAuthHandler(authUC),
		Settings: settingshandler.NewConfigurationHandler(Settings(db)),
		System:   newSystemHandler(db, rdb),
	}
}

func newSystemHandler(db *gorm.DB, rdb *redis.Client) *platformhandler.SystemHandler {
	database := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	if rdb == nil {
		return platformhandler.NewSystemHandler(database, nil, nil)
	}
	return platformhandler.NewSystemHandler(
		database,
		func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		func(ctx context.Context) (int64, error) { return cache.ClearAll(ctx, rdb, cache.DefaultNamespace) },
	)
}
