package adapters

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/usecase"
)

// tagGorm はTagRepositoryインターフェースのGORM実装です。
type tagGorm struct {
	db *gorm.DB
}

var _ usecase.TagRepository = (*tagGorm)(nil)

// NewTagRepository は指定されたDB接続でtagGormリポジトリを生成します。
func NewTagRepository(db *gorm.DB) *tagGorm {
	return &tagGorm{db: db}
}

// List は全タグを名前順に返します。
func (r *tagGorm) List(ctx context.Context) ([]entity.Tag, error) {
	out := []entity.Tag{}
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID はIDでタグを取得します。
func (r *tagGorm) FindByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var t entity.Tag
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTagNotFound
		}
		return nil, err
	}
	return &t, nil
}

// registerTags は記事のタグ名をblog_tagsへ登録します。既存の名前やスラッグは無視します。
// 長さの検証はusecaseで済んでいる前提です。
func registerTags(tx *gorm.DB, names []string) error {
	tags := make([]entity.Tag, 0, len(names))
	for _, name := range names {
		s := slug.Make(name)
		if s == "" || utf8.RuneCountInString(name) > entity.MaxTagLength {
			continue
		}
		if len(s) > entity.MaxTagLength {
			s = s[:entity.MaxTagLength]
		}
		tags = append(tags, entity.Tag{Name: name, Slug: s})
	}
	if len(tags) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error
}
