// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"topbrands_backend/internal/feature/auth/domain/entity"
	"topbrands_backend/internal/feature/auth/usecase"
	"topbrands_backend/internal/platform/db"
)

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたDB接続でuserGormリポジトリの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create は新しいユーザーを追加します。
// ユーザー名が重複する場合、usecase.ErrDuplicateUserを返します。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if db.IsDuplicateKey(err) {
		return usecase.ErrDuplicateUser
	}
	return err
}

// FindByUsername はユーザー名でユーザーを取得します。
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("username = ?", username))
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// List は全ユーザーをユーザー名順に返します。
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	out := []entity.User{}
	if err := r.db.WithContext(ctx).Order("username").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// RecordLogin はログイン日時と回数を1つのUPDATE文で更新します。
func (r *userGorm) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		UpdateColumns(map[string]any{
			"last_login":  at,
			"login_count": gorm.Expr("login_count + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SetActive はis_activeを更新します。
func (r *userGorm) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Update はプロフィールと権限の列のみを保存します。
// ユーザー名が重複する場合、usecase.ErrDuplicateUserを返します。
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	res := r.db.WithContext(ctx).Model(u).
		Select("username", "email", "first_name", "last_name", "is_active", "is_staff", "is_superuser", "role").
		Updates(u)
	if db.IsDuplicateKey(res.Error) {
		return usecase.ErrDuplicateUser
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// SetPassword はハッシュ化済みパスワードを更新します。
func (r *userGorm) SetPassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザーを物理削除します。
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

func (r *userGorm) first(q *gorm.DB) (*entity.User, error) {
	var u entity.User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
