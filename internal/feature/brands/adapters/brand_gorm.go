// Package adapters はbrandsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"topbrands_backend/internal/feature/brands/domain/entity"
	"topbrands_backend/internal/feature/brands/usecase"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/platform/db"
	"topbrands_backend/internal/shared/pagination"
)

// orderingFields は?ordering=で指定可能なフィールドと列の対応です。
var orderingFields = map[string]string{
	"current_rank":      "current_rank",
	"brand_value":       "brand_value_amount",
	"growth_rate":       "growth_rate_amount",
	"brand_recognition": "brand_recognition",
	"created_at":        "created_at",
}

// searchColumns は検索対象の列です。
var searchColumns = []string{"title", "subtitle", "description"}

// brandGorm はBrandRepositoryインターフェースのGORM実装です。
type brandGorm struct {
	db *gorm.DB
}

var _ usecase.BrandRepository = (*brandGorm)(nil)

// NewBrandRepository は指定されたDB接続でbrandGormリポジトリの新しいインスタンスを生成します。
func NewBrandRepository(db *gorm.DB) *brandGorm {
	return &brandGorm{db: db}
}

// List はフィルタ条件に一致するブランドを1ページ分と総件数を返します。
func (r *brandGorm) List(ctx context.Context, f usecase.Filter, ordering string, page pagination.Page) ([]entity.Brand, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Brand{}).Scopes(r.filter(f)...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Brand{}, 0, nil
	}

	var out []entity.Brand
	err := r.query(ctx, f).
		Scopes(db.Ordering(ordering, orderingFields, "year ASC", "current_rank ASC"), db.Paginate(page)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListTop は最大limit件のブランドを返します。limitが0以下の場合は全件です。
func (r *brandGorm) ListTop(ctx context.Context, f usecase.Filter, ordering string, limit int) ([]entity.Brand, error) {
	q := r.query(ctx, f).Scopes(db.Ordering(ordering, orderingFields, "year ASC", "current_rank ASC"))
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.Brand
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySlug はスラッグでブランドを取得します。
// 存在しない場合、usecase.ErrBrandNotFoundを返します。
func (r *brandGorm) FindBySlug(ctx context.Context, f usecase.Filter, slug string) (*entity.Brand, error) {
	return r.first(r.query(ctx, f).Where("slug = ?", slug))
}

// FindByID はIDでブランドを取得します。
func (r *brandGorm) FindByID(ctx context.Context, f usecase.Filter, id uint) (*entity.Brand, error) {
	return r.first(r.query(ctx, f).Where("brands.id = ?", id))
}

// Increment はカウンター列をアトミックに1増やし、新しい値を返します。
func (r *brandGorm) Increment(ctx context.Context, id uint, column string) (int64, error) {
	v, err := db.IncrementColumn(ctx, r.db, &entity.Brand{}, column, "id = ?", id)
	if db.IsNotFound(err) {
		return 0, usecase.ErrBrandNotFound
	}
	return v, err
}

// Create はブランドと詳細行を追加します。
// 同じ年に同じスラッグが存在する場合、usecase.ErrDuplicateBrandを返します。
func (r *brandGorm) Create(ctx context.Context, b *entity.Brand) error {
	err := r.db.WithContext(ctx).
		Omit("Category", "Industry", "Headquarters").
		Create(b).Error
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateBrand
	}
	return err
}

// Update はブランドを保存し、指定された詳細行を置き換えます（単一トランザクション）。
func (r *brandGorm) Update(ctx context.Context, b *entity.Brand) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(b).Error; err != nil {
			return err
		}
		return replaceDetails(tx, b)
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateBrand
	}
	return err
}

// Delete はブランドと詳細行を削除します。
func (r *brandGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteDetails(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&entity.Brand{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrBrandNotFound
		}
		return nil
	})
}

func (r *brandGorm) query(ctx context.Context, f usecase.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Brand{}).
		Scopes(r.filter(f)...).
		Preload("Category").Preload("Industry").Preload("Headquarters")
	if f.WithDetails {
		q = q.
			Preload("Metrics", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") }).
			Preload("Achievements", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") }).
			Preload("Timeline", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") })
	}
	return q
}

func (r *brandGorm) filter(f usecase.Filter) []db.Scope {
	scopes := []db.Scope{db.Search(f.Search, searchColumns...)}
	if f.Year != nil {
		scopes = append(scopes, db.InYear(*f.Year))
	}
	if f.PublishedOnly {
		scopes = append(scopes, db.Published())
	}
	scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
		if f.CategoryID != nil {
			tx = tx.Where("category_id = ?", *f.CategoryID)
		}
		if f.CategorySlug != "" {
			tx = tx.Where("category_id IN (?)", r.classificationIDs(catalog.KindCategory, f.CategorySlug))
		}
		if f.IndustryID != nil {
			tx = tx.Where("industry_id = ?", *f.IndustryID)
		}
		if f.IndustrySlug != "" {
			tx = tx.Where("industry_id IN (?)", r.classificationIDs(catalog.KindIndustry, f.IndustrySlug))
		}
		if f.IsFeatured != nil {
			tx = tx.Where("is_featured = ?", *f.IsFeatured)
		}
		if f.IsNewEntry != nil {
			tx = tx.Where("is_new_entry = ?", *f.IsNewEntry)
		}
		if f.MaxRank > 0 {
			tx = tx.Where("current_rank <= ?", f.MaxRank)
		}
		return tx
	})
	return scopes
}

func (r *brandGorm) classificationIDs(kind catalog.Kind, slug string) *gorm.DB {
	return r.db.Model(&catalog.Classification{}).Select("id").Where("kind = ? AND slug = ?", kind, slug)
}

func (r *brandGorm) first(q *gorm.DB) (*entity.Brand, error) {
	var b entity.Brand
	if err := q.First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBrandNotFound
		}
		return nil, err
	}
	return &b, nil
}

func deleteDetails(tx *gorm.DB, brandID uint) error {
	for _, model := range []any{&entity.Metric{}, &entity.Achievement{}, &entity.TimelineEvent{}} {
		if err := tx.Where("brand_id = ?", brandID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// replaceDetails は指定された詳細グループのみ置き換えます。nilのグループは既存の行を残します。
func replaceDetails(tx *gorm.DB, b *entity.Brand) error {
	if b.Metrics != nil {
		for i := range b.Metrics {
			b.Metrics[i].ID = 0
			b.Metrics[i].BrandID = b.ID
		}
		if err := replaceRows(tx, &entity.Metric{}, b.ID, &b.Metrics, len(b.Metrics)); err != nil {
			return err
		}
	}
	if b.Achievements != nil {
		for i := range b.Achievements {
			b.Achievements[i].ID = 0
			b.Achievements[i].BrandID = b.ID
		}
		if err := replaceRows(tx, &entity.Achievement{}, b.ID, &b.Achievements, len(b.Achievements)); err != nil {
			return err
		}
	}
	if b.Timeline != nil {
		for i := range b.Timeline {
			b.Timeline[i].ID = 0
			b.Timeline[i].BrandID = b.ID
		}
		if err := replaceRows(tx, &entity.TimelineEvent{}, b.ID, &b.Timeline, len(b.Timeline)); err != nil {
			return err
		}
	}
	return nil
}

func replaceRows(tx *gorm.DB, model any, brandID uint, rows any, n int) error {
	if err := tx.Where("brand_id = ?", brandID).Delete(model).Error; err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return tx.Create(rows).Error
}
