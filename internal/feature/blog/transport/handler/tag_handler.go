package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/transport/http/dto"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// TagUsecase はブログタグ参照のユースケースを定義します。
type TagUsecase interface {
	List(ctx context.Context) ([]entity.Tag, error)
	Get(ctx context.Context, id uint) (*entity.Tag, error)
}

// TagHandler はダッシュボードのタグ参照APIを処理します。読み取り専用です。
type TagHandler struct {
	uc TagUsecase
}

// NewTagHandler はTagHandlerを生成します。
func NewTagHandler(uc TagUsecase) *TagHandler {
	return &TagHandler{uc: uc}
}

// List は全タグを返します。GET /api/dashboard/blog-tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.uc.List(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagList(tags))
}

// Get は1件のタグを返します。GET /api/dashboard/blog-tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	tag, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagResponse(*tag))
}
