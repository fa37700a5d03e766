package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/brands/transport/http/dto"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/pagination"
	"topbrands_backend/internal/shared/params"
)

// AdminList は公開状態を問わずブランドを返します。
// GET /api/dashboard/brands?year=2025&search=mtn
func (h *BrandHandler) AdminList(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	page := h.limits.FromQuery(c)
	brands, total, err := h.uc.AdminList(c.Request.Context(), year, c.Query("search"), page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewBrandList(brands)))
}

// AdminGet はIDでブランド詳細を返します。
func (h *BrandHandler) AdminGet(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	b, err := h.uc.AdminGet(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrandDetailResponse(*b))
}

// Create はブランドを作成します。
func (h *BrandHandler) Create(c *gin.Context) {
	var req dto.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	b, err := h.uc.Create(c.Request.Context(), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewBrandDetailResponse(*b))
}

// Update はブランドを更新します。PUT・PATCHともに、送られたフィールドのみ変更します。
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	current, err := h.uc.AdminGet(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	req := dto.NewBrandRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	b, err := h.uc.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrandDetailResponse(*b))
}

// Delete はブランドを削除します。
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
