// Package adapters はyearsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/feature/years/usecase"
	"topbrands_backend/internal/platform/db"
)

// yearGorm はYearRepositoryインターフェースのGORM実装です。
type yearGorm struct {
	db *gorm.DB
}

var _ usecase.YearRepository = (*yearGorm)(nil)

// NewYearRepository は指定されたDB接続でyearGormリポジトリを生成します。
func NewYearRepository(db *gorm.DB) *yearGorm {
	return &yearGorm{db: db}
}

// List は全ての年を新しい順に返します。
func (r *yearGorm) List(ctx context.Context) ([]entity.YearRecord, error) {
	var out []entity.YearRecord
	if err := r.db.WithContext(ctx).Order("year DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByYear は年で1件取得します。存在しない場合、usecase.ErrYearNotFoundを返します。
func (r *yearGorm) FindByYear(ctx context.Context, year int) (*entity.YearRecord, error) {
	var y entity.YearRecord
	if err := r.db.WithContext(ctx).Where("year = ?", year).First(&y).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrYearNotFound
		}
		return nil, err
	}
	return &y, nil
}

// Create は年を追加します。有効化されている場合は他の年を同じトランザクションで無効化します。
func (r *yearGorm) Create(ctx context.Context, y *entity.YearRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if y.IsActive {
			if err := deactivateOthers(tx, y.Year); err != nil {
				return err
			}
		}
		return tx.Create(y).Error
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateYear
	}
	return err
}

// Update は年を保存します。有効化の扱いはCreateと同じです。
func (r *yearGorm) Update(ctx context.Context, y *entity.YearRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if y.IsActive {
			if err := tx.Model(&entity.YearRecord{}).
				Where("is_active = ? AND id <> ?", true, y.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(y).Error
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateYear
	}
	return err
}

// Delete は年を削除します。
func (r *yearGorm) Delete(ctx context.Context, year int) error {
	res := r.db.WithContext(ctx).Where("year = ?", year).Delete(&entity.YearRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrYearNotFound
	}
	return nil
}

// SetActive は他の年を全て無効化し、指定年を有効化します（単一トランザクション）。
// 指定年が存在しない場合はロールバックし、usecase.ErrYearNotFoundを返します。
func (r *yearGorm) SetActive(ctx context.Context, year int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateOthers(tx, year); err != nil {
			return err
		}
		res := tx.Model(&entity.YearRecord{}).Where("year = ?", year).Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrYearNotFound
		}
		return nil
	})
}

// ActiveYear は有効な年を返します。複数ある場合は更新日時が新しいもの、次に年が大きいものを選びます。
func (r *yearGorm) ActiveYear(ctx context.Context) (int, bool, error) {
	var years []int
	err := r.db.WithContext(ctx).Model(&entity.YearRecord{}).
		Where("is_active = ?", true).
		Order("updated_at DESC").Order("year DESC").
		Limit(1).
		Pluck("year", &years).Error
	if err != nil {
		return 0, false, err
	}
	if len(years) == 0 {
		return 0, false, nil
	}
	return years[0], true, nil
}

// CreateWithLog は年と移行ログを同じトランザクションで追加します。
func (r *yearGorm) CreateWithLog(ctx context.Context, y *entity.YearRecord, log *entity.MigrationLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(y).Error; err != nil {
			return err
		}
		return tx.Create(log).Error
	})
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateYear
	}
	return err
}

// ListMigrations は新しい順に最大limit件の移行ログを返します。
func (r *yearGorm) ListMigrations(ctx context.Context, limit int) ([]entity.MigrationLog, error) {
	var out []entity.MigrationLog
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func deactivateOthers(tx *gorm.DB, year int) error {
	return tx.Model(&entity.YearRecord{}).
		Where("is_active = ? AND year <> ?", true, year).
		Update("is_active", false).Error
}
