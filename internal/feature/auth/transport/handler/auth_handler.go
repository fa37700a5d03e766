// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/auth/domain/entity"
	"topbrands_backend/internal/feature/auth/transport/http/dto"
	"topbrands_backend/internal/feature/auth/usecase"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// AuthUsecase は認証とユーザー管理のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, username, password string) (string, *entity.User, error)
	CurrentUser(ctx context.Context, id uint) (*entity.User, error)
	// Authorize は無効化・削除されたユーザーに対してusecase.ErrInactiveUserを返します。
	Authorize(ctx context.Context, id uint) (*entity.User, error)
	ListUsers(ctx context.Context, actorID uint) ([]entity.User, error)
	GetUser(ctx context.Context, actorID, id uint) (*entity.User, error)
	AddUser(ctx context.Context, actorID uint, in usecase.NewUser) (*entity.User, error)
	UpdateUser(ctx context.Context, actorID, id uint, in usecase.UserUpdate) (*entity.User, error)
	DeleteUser(ctx context.Context, actorID, id uint) error
	ResetPassword(ctx context.Context, actorID, id uint, password string) error
	ToggleActive(ctx context.Context, actorID, id uint) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はダッシュボードのログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はトークンとユーザー情報付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.RespondBind(c, err)
		return
	}
	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		apperror.Respond(c, err)
		return
	}
	slog.Info("user login successful", "username", user.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.NewUserResponse(*user)})
}

// Me はトークンのユーザーを返します。GET /api/dashboard/auth/user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// RequireActiveUser はJWTのユーザーをDBから読み直し、無効化・削除されていれば401で中断します。
// AuthRequiredの後、RequireStaffの前に置きます。staff/adminの判定はDBの値で上書きします。
func (h *AuthHandler) RequireActiveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.auth.Authorize(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
		if err != nil {
			slog.Warn("dashboard access rejected", "user_id", c.GetUint(jwtmw.ContextUserID), "error", err, "remote_addr", c.ClientIP())
			apperror.Respond(c, err)
			return
		}
		c.Set(jwtmw.ContextUsername, user.Username)
		c.Set(jwtmw.ContextIsStaff, user.IsStaff || user.IsAdmin())
		c.Set(jwtmw.ContextIsAdmin, user.IsAdmin())
		c.Next()
	}
}

// Users は操作者が閲覧できるユーザーを返します。GET /api/dashboard/users
func (h *AuthHandler) Users(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserList(users))
}

// GetUser は1件のユーザーを返します。GET /api/dashboard/users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// CreateUser はユーザーを登録します（管理者のみ）。POST /api/dashboard/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	user, err := h.auth.AddUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), req.NewUser())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(*user))
}

// UpdateUser はユーザーを更新します（管理者のみ）。PUT/PATCHとも送られたフィールドのみ変更します。
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	actorID := c.GetUint(jwtmw.ContextUserID)
	current, err := h.auth.GetUser(c.Request.Context(), actorID, id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	req := dto.NewUserUpdateRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	user, err := h.auth.UpdateUser(c.Request.Context(), actorID, id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// DeleteUser はユーザーを削除します（管理者のみ）。自分自身は削除できません。
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.auth.DeleteUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetPassword はユーザーのパスワードを再設定します（管理者のみ）。
//
// エンドポイント例:
// POST /api/dashboard/users/7/reset_password {"new_password": "..."} → {"message": "Password reset successfully"}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	var req dto.ResetPasswordRequest
	// 空ボディはnew_password未指定としてusecaseに判定させる
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperror.RespondBind(c, err)
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id, req.NewPassword); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// ToggleActive はユーザーの有効状態を反転します（管理者のみ）。
//
// エンドポイント例:
// POST /api/dashboard/users/7/toggle_active → {"message": "User editor deactivated", "user": {...}}
func (h *AuthHandler) ToggleActive(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	user, err := h.auth.ToggleActive(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User " + user.Username + " " + state,
		"user":    dto.NewUserResponse(*user),
	})
}
