// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"topbrands_backend/internal/feature/auth/domain/entity"
)

// LoginRequest はPOST /auth/loginのリクエストボディを表します。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse はダッシュボードユーザーのJSON表現です。パスワードは含みません。
type UserResponse struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LoginCount  int        `json:"login_count"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
}

// LoginResponse はログイン成功時のレスポンスです。
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse はエンティティからレスポンスを組み立てます。
func NewUserResponse(u entity.User) UserResponse {
	role := u.Role
	if u.IsSuperuser {
		role = entity.RoleAdmin
	}
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Role:        string(role),
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		LoginCount:  u.LoginCount,
		LastLogin:   u.LastLogin,
		DateJoined:  u.CreatedAt,
	}
}

// NewUserList は一覧レスポンスを組み立てます。
func NewUserList(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
