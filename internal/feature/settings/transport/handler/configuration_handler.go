// Package handler はsettingsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/settings/domain/entity"
	"topbrands_backend/internal/feature/settings/transport/http/dto"
	"topbrands_backend/internal/feature/settings/usecase"
	jwtmw "topbrands_backend/internal/platform/jwt"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// ConfigurationUsecase はシステム設定のユースケースを定義します。
// adminは操作者が管理者権限を持つかどうかです。
type ConfigurationUsecase interface {
	List(ctx context.Context, admin bool) ([]entity.Configuration, error)
	Get(ctx context.Context, admin bool, id uint) (*entity.Configuration, error)
	Create(ctx context.Context, admin bool, in usecase.Input) (*entity.Configuration, error)
	Update(ctx context.Context, admin bool, id uint, in usecase.Input) (*entity.Configuration, error)
	Delete(ctx context.Context, admin bool, id uint) error
}

// ConfigurationHandler はシステム設定のHTTPリクエストを処理します。
type ConfigurationHandler struct {
	uc ConfigurationUsecase
}

// NewConfigurationHandler はConfigurationHandlerを生成します。
func NewConfigurationHandler(uc ConfigurationUsecase) *ConfigurationHandler {
	return &ConfigurationHandler{uc: uc}
}

// List は有効な設定を返します。管理者以外には公開設定のみ返します。
// GET /api/dashboard/configurations
func (h *ConfigurationHandler) List(c *gin.Context) {
	list, err := h.uc.List(c.Request.Context(), c.GetBool(jwtmw.ContextIsAdmin))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConfigurationList(list))
}

// Get は1件の設定を返します。
func (h *ConfigurationHandler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	got, err := h.uc.Get(c.Request.Context(), c.GetBool(jwtmw.ContextIsAdmin), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConfigurationResponse(*got))
}

// Create は設定を作成します。
func (h *ConfigurationHandler) Create(c *gin.Context) {
	var req dto.ConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	created, err := h.uc.Create(c.Request.Context(), c.GetBool(jwtmw.ContextIsAdmin), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewConfigurationResponse(*created))
}

// Update は設定を更新します。送られたフィールドのみ変更します。
// requires_adminの設定を管理者以外が更新すると403です。
func (h *ConfigurationHandler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	admin := c.GetBool(jwtmw.ContextIsAdmin)
	current, err := h.uc.Get(c.Request.Context(), admin, id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	req := dto.NewConfigurationRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	updated, err := h.uc.Update(c.Request.Context(), admin, id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewConfigurationResponse(*updated))
}

// Delete は設定を削除します。
func (h *ConfigurationHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), c.GetBool(jwtmw.ContextIsAdmin), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
