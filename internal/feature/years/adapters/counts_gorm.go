package adapters

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	blog "topbrands_backend/internal/feature/blog/domain/entity"
	brands "topbrands_backend/internal/feature/brands/domain/entity"
	insights "topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/feature/years/usecase"
	"topbrands_backend/internal/platform/db"
)

// countGorm は年ごとの公開コンテンツ件数を数えます。結果はキャッシュしません。
type countGorm struct {
	db *gorm.DB
}

var _ usecase.CountRepository = (*countGorm)(nil)

// NewCountRepository は指定されたDB接続でcountGormを生成します。
func NewCountRepository(db *gorm.DB) *countGorm {
	return &countGorm{db: db}
}

// CountsForYear は指定年の公開済みブランド・ブログ記事・インサイトを並行して数えます。
// ブログ記事はステータスがpublishedのものだけを数えます。
func (r *countGorm) CountsForYear(ctx context.Context, year int) (entity.Counts, error) {
	var c entity.Counts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&brands.Brand{}).
			Scopes(db.InYear(year), db.Published()).
			Count(&c.Brands).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&blog.Post{}).
			Scopes(db.InYear(year), db.Published()).
			Where("status = ?", blog.StatusPublished).
			Count(&c.BlogPosts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&insights.Insight{}).
			Scopes(db.InYear(year), db.Published()).
			Count(&c.Insights).Error
	})

	if err := g.Wait(); err != nil {
		return entity.Counts{}, err
	}
	return c, nil
}
