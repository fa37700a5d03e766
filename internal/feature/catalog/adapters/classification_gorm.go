// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/usecase"
	"topbrands_backend/internal/platform/db"
)

// reference は分類を参照する外部キー列です。
type reference struct {
	table  string
	column string
}

// references は種別ごとに削除時にNULLへ戻す参照列の一覧です。
var references = map[entity.Kind][]reference{
	entity.KindCategory:     {{"brands", "category_id"}, {"insights", "category_id"}},
	entity.KindIndustry:     {{"brands", "industry_id"}},
	entity.KindLocation:     {{"brands", "headquarters_id"}},
	entity.KindBlogCategory: {{"blog_posts", "category_id"}},
}

// classificationGorm はClassificationRepositoryインターフェースのGORM実装です。
type classificationGorm struct {
	db *gorm.DB
}

var _ usecase.ClassificationRepository = (*classificationGorm)(nil)

// NewClassificationRepository は指定されたDB接続でリポジトリを生成します。
func NewClassificationRepository(db *gorm.DB) *classificationGorm {
	return &classificationGorm{db: db}
}

// List は種別ごとの分類を名前順で返します。
func (r *classificationGorm) List(ctx context.Context, kind entity.Kind, activeOnly bool) ([]entity.Classification, error) {
	q := r.db.WithContext(ctx).Where("kind = ?", kind)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []entity.Classification
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID はIDで分類を取得します。
// 存在しない場合、usecase.ErrClassificationNotFoundを返します。
func (r *classificationGorm) FindByID(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
	var c entity.Classification
	if err := r.db.WithContext(ctx).Where("kind = ? AND id = ?", kind, id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrClassificationNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create は分類を追加します。名前またはスラッグが重複する場合、usecase.ErrDuplicateClassificationを返します。
func (r *classificationGorm) Create(ctx context.Context, c *entity.Classification) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrDuplicateClassification
		}
		return err
	}
	return nil
}

// Update は分類を保存します。
func (r *classificationGorm) Update(ctx context.Context, c *entity.Classification) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrDuplicateClassification
		}
		return err
	}
	return nil
}

// Delete は参照列をNULLに戻してから分類を削除します（単一トランザクション）。
func (r *classificationGorm) Delete(ctx context.Context, kind entity.Kind, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range references[kind] {
			if err := tx.Table(ref.table).
				Where(ref.column+" = ?", id).
				UpdateColumn(ref.column, gorm.Expr("NULL")).Error; err != nil {
				return err
			}
		}
		res := tx.Where("kind = ? AND id = ?", kind, id).Delete(&entity.Classification{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrClassificationNotFound
		}
		return nil
	})
}
