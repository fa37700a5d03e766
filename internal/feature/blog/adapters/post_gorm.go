// Package adapters はblogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/usecase"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/platform/db"
	"topbrands_backend/internal/shared/pagination"
)

// orderingFields は?ordering=で指定可能なフィールドと列の対応です。
var orderingFields = map[string]string{
	"published_at": "published_at",
	"created_at":   "created_at",
	"views_count":  "views_count",
	"title":        "title",
}

var searchColumns = []string{"title", "excerpt", "content"}

// 既定の並び順は公開日時の新しい順です。
var defaultOrder = []string{"published_at DESC", "created_at DESC"}

// postGorm はPostRepositoryインターフェースのGORM実装です。
type postGorm struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postGorm)(nil)

// NewPostRepository は指定されたDB接続でpostGormリポジトリを生成します。
func NewPostRepository(db *gorm.DB) *postGorm {
	return &postGorm{db: db}
}

// List はフィルタ条件に一致する記事を1ページ分と総件数を返します。
func (r *postGorm) List(ctx context.Context, f usecase.Filter, ordering string, page pagination.Page) ([]entity.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Post{}).Scopes(r.filter(f)...).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Post{}, 0, nil
	}
	var out []entity.Post
	err := r.query(ctx, f).
		Scopes(db.Ordering(ordering, orderingFields, defaultOrder...), db.Paginate(page)).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListTop は最大limit件の記事を返します。limitが0以下の場合は全件です。
func (r *postGorm) ListTop(ctx context.Context, f usecase.Filter, ordering string, limit int) ([]entity.Post, error) {
	q := r.query(ctx, f).Scopes(db.Ordering(ordering, orderingFields, defaultOrder...))
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []entity.Post
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySlug はスラッグで記事を取得します。
func (r *postGorm) FindBySlug(ctx context.Context, f usecase.Filter, slug string) (*entity.Post, error) {
	return r.first(r.query(ctx, f).Where("slug = ?", slug))
}

// FindByID はIDで記事を取得します。
func (r *postGorm) FindByID(ctx context.Context, f usecase.Filter, id uint) (*entity.Post, error) {
	return r.first(r.query(ctx, f).Where("blog_posts.id = ?", id))
}

// Increment はカウンター列をアトミックに1増やし、新しい値を返します。
func (r *postGorm) Increment(ctx context.Context, id uint, column string) (int64, error) {
	v, err := db.IncrementColumn(ctx, r.db, &entity.Post{}, column, "id = ?", id)
	if db.IsNotFound(err) {
		return 0, usecase.ErrPostNotFound
	}
	return v, err
}

// Create は記事を追加し、タグをblog_tagsへ登録します。
func (r *postGorm) Create(ctx context.Context, p *entity.Post) error {
	return r.save(ctx, p, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(p).Error
	})
}

// Update は記事を保存し、タグをblog_tagsへ登録します。
func (r *postGorm) Update(ctx context.Context, p *entity.Post) error {
	return r.save(ctx, p, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(p).Error
	})
}

func (r *postGorm) save(ctx context.Context, p *entity.Post, write func(tx *gorm.DB) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := write(tx); err != nil {
			return err
		}
		return registerTags(tx, p.TagList())
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicatePost
	}
	return err
}

// Delete は記事を削除します。
func (r *postGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}

func (r *postGorm) query(ctx context.Context, f usecase.Filter) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entity.Post{}).Scopes(r.filter(f)...).Preload("Category")
}

func (r *postGorm) filter(f usecase.Filter) []db.Scope {
	scopes := []db.Scope{db.Search(f.Search, searchColumns...)}
	if f.Year != nil {
		scopes = append(scopes, db.InYear(*f.Year))
	}
	if f.PublicOnly {
		scopes = append(scopes, db.Published())
		f.Status = entity.StatusPublished
	}
	scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
		if f.Status != "" {
			tx = tx.Where("status = ?", f.Status)
		}
		if f.CategoryID != nil {
			tx = tx.Where("category_id = ?", *f.CategoryID)
		}
		if f.CategorySlug != "" {
			tx = tx.Where("category_id IN (?)",
				r.db.Model(&catalog.Classification{}).Select("id").
					Where("kind = ? AND slug = ?", catalog.KindBlogCategory, f.CategorySlug))
		}
		if f.IsFeatured != nil {
			tx = tx.Where("is_featured = ?", *f.IsFeatured)
		}
		return tx
	})
	return scopes
}

func (r *postGorm) first(q *gorm.DB) (*entity.Post, error) {
	var p entity.Post
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}
