// Package adapters はsettingsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"topbrands_backend/internal/feature/settings/domain/entity"
	"topbrands_backend/internal/feature/settings/usecase"
	"topbrands_backend/internal/platform/db"
)

// configurationGorm はConfigurationRepositoryインターフェースのGORM実装です。
type configurationGorm struct {
	db *gorm.DB
}

var _ usecase.ConfigurationRepository = (*configurationGorm)(nil)

// NewConfigurationRepository は指定されたDB接続でリポジトリを生成します。
func NewConfigurationRepository(db *gorm.DB) *configurationGorm {
	return &configurationGorm{db: db}
}

// List は有効な設定をキー順で返します。publicOnlyの場合は公開設定のみです。
func (r *configurationGorm) List(ctx context.Context, publicOnly bool) ([]entity.Configuration, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	out := []entity.Configuration{}
	if err := q.Order("key ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID はIDで設定を取得します。
func (r *configurationGorm) FindByID(ctx context.Context, id uint) (*entity.Configuration, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByKey はキーで設定を取得します。
func (r *configurationGorm) FindByKey(ctx context.Context, key string) (*entity.Configuration, error) {
	return r.first(r.db.WithContext(ctx).Where("key = ?", key))
}

// Create は設定を追加します。キーが重複する場合、usecase.ErrDuplicateKeyを返します。
func (r *configurationGorm) Create(ctx context.Context, c *entity.Configuration) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateKey
	}
	return err
}

// Update は設定を保存します。
func (r *configurationGorm) Update(ctx context.Context, c *entity.Configuration) error {
	err := r.db.WithContext(ctx).Save(c).Error
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateKey
	}
	return err
}

// Delete は設定を削除します。
func (r *configurationGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Configuration{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrConfigurationNotFound
	}
	return nil
}

func (r *configurationGorm) first(q *gorm.DB) (*entity.Configuration, error) {
	var c entity.Configuration
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrConfigurationNotFound
		}
		return nil, err
	}
	return &c, nil
}
