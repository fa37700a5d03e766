// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"topbrands_backend/internal/feature/auth/domain/entity"
	jwtmw "topbrands_backend/internal/platform/jwt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// dummyHash はユーザーが存在しない場合でもbcrypt比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// 同じユーザー名が既に存在する場合、ErrDuplicateUserを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername はユーザー名に一致するユーザーを取得します。
	// 存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID はIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// List は全ユーザーをユーザー名順に返します。
	List(ctx context.Context) ([]entity.User, error)

	// RecordLogin はlast_loginを更新し、login_countをアトミックに1増やします。
	RecordLogin(ctx context.Context, id uint, at time.Time) error

	// SetActive はis_activeを更新します。
	SetActive(ctx context.Context, id uint, active bool) error

	// Update はプロフィールと権限の列を保存します。パスワードとログイン記録は変更しません。
	Update(ctx context.Context, user *entity.User) error

	// SetPassword はハッシュ化済みのパスワードを保存します。
	SetPassword(ctx context.Context, id uint, hash string) error

	// Delete はユーザーを削除します。存在しない場合、ErrUserNotFoundを返します。
	Delete(ctx context.Context, id uint) error
}

// TokenGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	GenerateToken(s jwtmw.Subject) (string, error)
}

// NewUser はCreateUserの入力です。
type NewUser struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	IsStaff     bool
	IsSuperuser bool
	Role        entity.Role
}

// AuthUsecase は認証とユーザー管理のビジネスロジックを実装します。
type AuthUsecase struct {
	users  UserRepository
	tokens TokenGenerator
	now    func() time.Time
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, now: time.Now}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Login はユーザーを認証し、成功時にJWTトークンとユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 無効化されたユーザーやダッシュボード権限のないユーザーも認証失敗として扱います。
func (u *AuthUsecase) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if user == nil || compareErr != nil || !user.CanAccessDashboard() {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(jwtmw.Subject{
		UserID:   user.ID,
		Username: user.Username,
		IsStaff:  user.IsStaff,
		IsAdmin:  user.IsAdmin(),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := u.now()
	if err := u.users.RecordLogin(ctx, user.ID, now); err != nil {
		// トークンは発行済みのため、記録失敗はログのみ
		slog.Warn("failed to record login", "user_id", user.ID, "error", err)
	} else {
		user.LoginCount++
		user.LastLogin = &now
	}
	return token, user, nil
}

// UserUpdate はUpdateUserの入力です。ハンドラーは既存の値で初期化してから上書きします。
type UserUpdate struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	Role        entity.Role
}

// CurrentUser はトークンのユーザーIDに対応するユーザーを返します。
func (u *AuthUsecase) CurrentUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Authorize はトークン発行後の状態変化を反映するため、リクエストごとにユーザーを読み直します。
// 削除・無効化されたユーザーや権限を失ったユーザーにはErrInactiveUserを返します。
func (u *AuthUsecase) Authorize(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInactiveUser
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	if !user.CanAccessDashboard() {
		return nil, ErrInactiveUser
	}
	return user, nil
}

// ListUsers はactorが閲覧できるユーザーを返します。
// スーパーユーザー以外はスーパーユーザーのアカウントを参照できません。
func (u *AuthUsecase) ListUsers(ctx context.Context, actorID uint) ([]entity.User, error) {
	actor, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsSuperuser {
		return users, nil
	}
	visible := make([]entity.User, 0, len(users))
	for _, user := range users {
		if !user.IsSuperuser {
			visible = append(visible, user)
		}
	}
	return visible, nil
}

// GetUser はactorが閲覧できる場合のみユーザーを返します。見えないユーザーは存在しない扱いです。
func (u *AuthUsecase) GetUser(ctx context.Context, actorID, id uint) (*entity.User, error) {
	_, user, err := u.actorAndTarget(ctx, actorID, id)
	return user, err
}

// AddUser はactorの権限を確認してからユーザーを登録します。
func (u *AuthUsecase) AddUser(ctx context.Context, actorID uint, in NewUser) (*entity.User, error) {
	actor, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if in.IsSuperuser && !actor.IsSuperuser {
		return nil, ErrSuperuserRequired
	}
	user, err := u.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	slog.Info("user created", "user_id", user.ID, "username", user.Username, "by", actorID)
	return user, nil
}

// UpdateUser はプロフィールと権限を更新します。自分自身の無効化と、
// スーパーユーザー以外によるスーパーユーザー権限の付与は拒否します。
func (u *AuthUsecase) UpdateUser(ctx context.Context, actorID, id uint, in UserUpdate) (*entity.User, error) {
	actor, user, err := u.actorAndTarget(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if in.IsSuperuser && !user.IsSuperuser && !actor.IsSuperuser {
		return nil, ErrSuperuserRequired
	}
	if actorID == id && !in.IsActive {
		return nil, ErrSelfDeactivation
	}

	if name := strings.TrimSpace(in.Username); name != "" {
		user.Username = name
	}
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.IsActive = in.IsActive
	user.IsSuperuser = in.IsSuperuser
	user.IsStaff = in.IsStaff || in.IsSuperuser
	if in.Role != "" {
		user.Role = in.Role
	}
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("user updated", "user_id", id, "by", actorID)
	return user, nil
}

// DeleteUser はユーザーを削除します。自分自身は削除できません。
func (u *AuthUsecase) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfDeletion
	}
	if _, _, err := u.actorAndTarget(ctx, actorID, id); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id, "by", actorID)
	return nil
}

// ResetPassword は新しいパスワードをハッシュ化して保存します。
func (u *AuthUsecase) ResetPassword(ctx context.Context, actorID, id uint, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if _, _, err := u.actorAndTarget(ctx, actorID, id); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.SetPassword(ctx, id, string(hashed)); err != nil {
		return err
	}
	slog.Info("user password reset", "user_id", id, "by", actorID)
	return nil
}

// actorAndTarget は操作者と対象ユーザーを読み込みます。
// スーパーユーザー以外からスーパーユーザーはErrUserNotFoundとして隠します。
func (u *AuthUsecase) actorAndTarget(ctx context.Context, actorID, id uint) (*entity.User, *entity.User, error) {
	actor, err := u.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if user.IsSuperuser && !actor.IsSuperuser {
		return nil, nil, ErrUserNotFound
	}
	return actor, user, nil
}

// ToggleActive はユーザーの有効状態を反転します。自分自身は無効化できません。
func (u *AuthUsecase) ToggleActive(ctx context.Context, actorID, id uint) (*entity.User, error) {
	if actorID == id {
		return nil, ErrSelfDeactivation
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := u.users.SetActive(ctx, id, user.IsActive); err != nil {
		return nil, fmt.Errorf("toggle user %d: %w", id, err)
	}
	slog.Info("user active state changed", "user_id", id, "active", user.IsActive, "by", actorID)
	return user, nil
}

// CreateUser はハッシュ化されたパスワードで有効なユーザーを登録します。
func (u *AuthUsecase) CreateUser(ctx context.Context, in NewUser) (*entity.User, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEditor
		if in.IsSuperuser {
			role = entity.RoleAdmin
		}
	}
	user := &entity.User{
		Username:    strings.TrimSpace(in.Username),
		Email:       in.Email,
		Password:    string(hashed),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IsActive:    true,
		IsStaff:     in.IsStaff || in.IsSuperuser,
		IsSuperuser: in.IsSuperuser,
		Role:        role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureUser はユーザー名が未登録の場合のみCreateUserを実行します。
// 作成した場合はtrueを返します。
func (u *AuthUsecase) EnsureUser(ctx context.Context, in NewUser) (bool, error) {
	_, err := u.users.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}
	if _, err := u.CreateUser(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}
