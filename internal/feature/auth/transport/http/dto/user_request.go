package dto

import (
	"topbrands_backend/internal/feature/auth/domain/entity"
	"topbrands_backend/internal/feature/auth/usecase"
)

// UserCreateRequest はPOST /usersのリクエストボディです。
type UserCreateRequest struct {
	Username    string `json:"username" binding:"required,max=150"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"max=150"`
	LastName    string `json:"last_name" binding:"max=150"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
}

// NewUser はリクエストをusecaseの入力へ変換します。ダッシュボードで作るユーザーは常にstaffです。
func (r UserCreateRequest) NewUser() usecase.NewUser {
	return usecase.NewUser{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		IsStaff:     true,
		IsSuperuser: r.IsSuperuser,
		Role:        entity.Role(r.Role),
	}
}

// UserUpdateRequest はPUT/PATCH /users/:idのリクエストボディです。
// NewUserUpdateRequestで既存値を入れてからバインドするため、省略したフィールドは変わりません。
type UserUpdateRequest struct {
	Username    string `json:"username" binding:"required,max=150"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	FirstName   string `json:"first_name" binding:"max=150"`
	LastName    string `json:"last_name" binding:"max=150"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
}

// NewUserUpdateRequest は既存ユーザーから更新リクエストの初期値を作ります。
func NewUserUpdateRequest(u entity.User) UserUpdateRequest {
	return UserUpdateRequest{
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Role:        string(u.Role),
	}
}

// Input はリクエストをusecaseの入力へ変換します。
func (r UserUpdateRequest) Input() usecase.UserUpdate {
	return usecase.UserUpdate{
		Username:    r.Username,
		Email:       r.Email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		IsActive:    r.IsActive,
		IsStaff:     r.IsStaff,
		IsSuperuser: r.IsSuperuser,
		Role:        entity.Role(r.Role),
	}
}

// ResetPasswordRequest はPOST /users/:id/reset_passwordのリクエストボディです。
// 空の場合はusecaseが"new_password is required"を返します。
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}
