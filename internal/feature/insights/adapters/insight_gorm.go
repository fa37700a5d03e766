// Package adapters はinsightsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/insights/usecase"
	"topbrands_backend/internal/platform/db"
	"topbrands_backend/internal/shared/pagination"
)

var orderingFields = map[string]string{
	"published_at":   "published_at",
	"created_at":     "created_at",
	"views_count":    "views_count",
	"download_count": "download_count",
}

var searchColumns = []string{"title", "description", "content"}

var defaultOrder = []string{"published_at DESC", "created_at DESC"}

// insightGorm はInsightRepositoryインターフェースのGORM実装です。
type insightGorm struct {
	db *gorm.DB
}

var _ usecase.InsightRepository = (*insightGorm)(nil)

// NewInsightRepository は指定されたDB接続でinsightGormリポジトリを生成します。
func NewInsightRepository(db *gorm.DB) *insightGorm {
	return &insightGorm{db: db}
}

// List はフィルタ条件に一致するインサイトを1ページ分と総件数を返します。
func (r *insightGorm) List(ctx context.Context, f usecase.Filter, ordering string, page pagination.Page) ([]entity.Insight, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Insight{}).Scopes(r.filter(f)...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Insight{}, 0, nil
	}
	var out []entity.Insight
	err := r.query(ctx, f).
		Scopes(db.Ordering(ordering, orderingFields, defaultOrder...), db.Paginate(page)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListTop は最大limit件のインサイトを返します。
func (r *insightGorm) ListTop(ctx context.Context, f usecase.Filter, ordering string, limit int) ([]entity.Insight, error) {
	q := r.query(ctx, f).Scopes(db.Ordering(ordering, orderingFields, defaultOrder...))
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.Insight
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySlug はスラッグでインサイトを取得します。
func (r *insightGorm) FindBySlug(ctx context.Context, f usecase.Filter, slug string) (*entity.Insight, error) {
	return r.first(r.query(ctx, f).Where("slug = ?", slug))
}

// FindByID はIDでインサイトを取得します。
func (r *insightGorm) FindByID(ctx context.Context, f usecase.Filter, id uint) (*entity.Insight, error) {
	return r.first(r.query(ctx, f).Where("insights.id = ?", id))
}

// Increment はカウンター列をアトミックに1増やし、新しい値を返します。
func (r *insightGorm) Increment(ctx context.Context, id uint, column string) (int64, error) {
	v, err := db.IncrementColumn(ctx, r.db, &entity.Insight{}, column, "id = ?", id)
	if db.IsNotFound(err) {
		return 0, usecase.ErrInsightNotFound
	}
	return v, err
}

// Create はインサイトと指標・主要な発見を追加します。
func (r *insightGorm) Create(ctx context.Context, i *entity.Insight) error {
	err := r.db.WithContext(ctx).Omit("Category").Create(i).Error
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateInsight
	}
	return err
}

// Update はインサイトを保存し、指定された詳細行を置き換えます（単一トランザクション）。
// nilの詳細グループは既存の行を残します。
func (r *insightGorm) Update(ctx context.Context, i *entity.Insight) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(i).Error; err != nil {
			return err
		}
		if i.Metrics != nil {
			for k := range i.Metrics {
				i.Metrics[k].ID = 0
				i.Metrics[k].InsightID = i.ID
			}
			if err := replaceRows(tx, &entity.Metric{}, i.ID, &i.Metrics, len(i.Metrics)); err != nil {
				return err
			}
		}
		if i.KeyFindings != nil {
			for k := range i.KeyFindings {
				i.KeyFindings[k].ID = 0
				i.KeyFindings[k].InsightID = i.ID
			}
			if err := replaceRows(tx, &entity.KeyFinding{}, i.ID, &i.KeyFindings, len(i.KeyFindings)); err != nil {
				return err
			}
		}
		return nil
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateInsight
	}
	return err
}

func replaceRows(tx *gorm.DB, model any, insightID uint, rows any, n int) error {
	if err := tx.Where("insight_id = ?", insightID).Delete(model).Error; err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return tx.Create(rows).Error
}

// Delete はインサイトと詳細行を削除します。
func (r *insightGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDetails(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&entity.Insight{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrInsightNotFound
		}
		return nil
	})
}

func (r *insightGorm) query(ctx context.Context, f usecase.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Insight{}).Scopes(r.filter(f)...).Preload("Category")
	if f.WithDetails {
		q = q.
			Preload("Metrics", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") }).
			Preload("KeyFindings", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") })
	}
	return q
}

func (r *insightGorm) filter(f usecase.Filter) []db.Scope {
	scopes := []db.Scope{db.Search(f.Search, searchColumns...)}
	if f.Year != nil {
		scopes = append(scopes, db.InYear(*f.Year))
	}
	if f.PublishedOnly {
		scopes = append(scopes, db.Published())
	}
	scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
		if f.InsightType != "" {
			tx = tx.Where("insight_type = ?", f.InsightType)
		}
		if f.CategoryID != nil {
			tx = tx.Where("category_id = ?", *f.CategoryID)
		}
		if f.CategorySlug != "" {
			tx = tx.Where("category_id IN (?)",
				r.db.Model(&catalog.Classification{}).Select("id").
					Where("kind = ? AND slug = ?", catalog.KindCategory, f.CategorySlug))
		}
		if f.IsFeatured != nil {
			tx = tx.Where("is_featured = ?", *f.IsFeatured)
		}
		if f.IsPremium != nil {
			tx = tx.Where("is_premium = ?", *f.IsPremium)
		}
		return tx
	})
	return scopes
}

func (r *insightGorm) first(q *gorm.DB) (*entity.Insight, error) {
	var i entity.Insight
	if err := q.First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInsightNotFound
		}
		return nil, err
	}
	return &i, nil
}

func deleteDetails(tx *gorm.DB, insightID uint) error {
	for _, model := range []any{&entity.Metric{}, &entity.KeyFinding{}} {
		if err := tx.Where("insight_id = ?", insightID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
