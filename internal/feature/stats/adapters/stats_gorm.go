// Package adapters はstatsフィーチャーの集計クエリを提供します。
package adapters

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	blog "topbrands_backend/internal/feature/blog/domain/entity"
	brands "topbrands_backend/internal/feature/brands/domain/entity"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	insights "topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/stats/usecase"
	years "topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/platform/db"
)

// statsGorm はStatsRepositoryインターフェースのGORM実装です。
type statsGorm struct {
	db *gorm.DB
}

var _ usecase.StatsRepository = (*statsGorm)(nil)

// NewStatsRepository は指定されたDB接続でstatsGormを生成します。
func NewStatsRepository(db *gorm.DB) *statsGorm {
	return &statsGorm{db: db}
}

// BrandFigures は指定年の公開ブランドのブランド価値と成長率を返します。
func (r *statsGorm) BrandFigures(ctx context.Context, year int) ([]usecase.BrandFigure, error) {
	var out []usecase.BrandFigure
	err := r.db.WithContext(ctx).Model(&brands.Brand{}).
		Scopes(db.InYear(year), db.Published()).
		Select("brand_value", "growth_rate").
		Scan(&out).Error
	return out, err
}

// ActiveCategories は有効なカテゴリ数を返します。
func (r *statsGorm) ActiveCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Classification{}).
		Where("kind = ? AND is_active = ?", catalog.KindCategory, true).
		Count(&n).Error
	return n, err
}

// TopCategory は指定年の公開ブランドが最も多いカテゴリ名を返します。同数の場合は名前順です。
func (r *statsGorm) TopCategory(ctx context.Context, year int) (string, bool, error) {
	var rows []struct {
		Name  string
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&brands.Brand{}).
		Select("classifications.name AS name, COUNT(brands.id) AS total").
		Joins("JOIN classifications ON classifications.id = brands.category_id").
		Where("brands.year = ? AND brands.is_published = ?", year, true).
		Group("classifications.id, classifications.name").
		Order("total DESC, classifications.name ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return "", false, err
	}
	return rows[0].Name, true, nil
}

// LatestUpdate は指定年の公開ブランドと公開記事のうち最も新しい更新日時を返します。
func (r *statsGorm) LatestUpdate(ctx context.Context, year int) (*time.Time, error) {
	var b brands.Brand
	res := r.db.WithContext(ctx).Model(&brands.Brand{}).
		Scopes(db.InYear(year), db.Published()).
		Select("updated_at").Order("updated_at DESC").Limit(1).Find(&b)
	if res.Error != nil {
		return nil, res.Error
	}
	var latest *time.Time
	if res.RowsAffected > 0 {
		latest = &b.UpdatedAt
	}

	var p blog.Post
	res = r.db.WithContext(ctx).Model(&blog.Post{}).
		Scopes(db.InYear(year), db.Published()).
		Where("status = ?", blog.StatusPublished).
		Select("updated_at").Order("updated_at DESC").Limit(1).Find(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 && (latest == nil || p.UpdatedAt.After(*latest)) {
		latest = &p.UpdatedAt
	}
	return latest, nil
}

// Dashboard は管理画面向けの件数を公開状態を問わず数えます。
func (r *statsGorm) Dashboard(ctx context.Context, year int, since time.Time) (usecase.DashboardCounts, error) {
	var c usecase.DashboardCounts
	g, ctx := errgroup.WithContext(ctx)
	count := func(dst *int64, model any, scopes ...db.Scope) {
		g.Go(func() error {
			return r.db.WithContext(ctx).Model(model).Scopes(scopes...).Count(dst).Error
		})
	}

	count(&c.TotalYears, &years.YearRecord{})
	count(&c.PublishedYears, &years.YearRecord{}, db.Published())
	count(&c.Brands, &brands.Brand{}, db.InYear(year))
	count(&c.BlogPosts, &blog.Post{}, db.InYear(year))
	count(&c.Insights, &insights.Insight{}, db.InYear(year))
	count(&c.RecentMigrations, &years.MigrationLog{}, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_at >= ?", since)
	})

	if err := g.Wait(); err != nil {
		return usecase.DashboardCounts{}, err
	}
	return c, nil
}
