// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/transport/http/dto"
	"topbrands_backend/internal/feature/catalog/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/params"
)

// CatalogUsecase は分類操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CatalogUsecase interface {
	ListPublic(ctx context.Context, kind entity.Kind) ([]entity.Classification, error)
	ListAll(ctx context.Context, kind entity.Kind) ([]entity.Classification, error)
	Get(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error)
	Create(ctx context.Context, kind entity.Kind, in usecase.Input) (*entity.Classification, error)
	Update(ctx context.Context, kind entity.Kind, id uint, in usecase.Input) (*entity.Classification, error)
	Delete(ctx context.Context, kind entity.Kind, id uint) error
}

// CatalogHandler は分類のHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は指定されたusecaseでCatalogHandlerを生成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListPublic は公開APIで指定種別の分類一覧を返すハンドラーを生成します。
//
// エンドポイント例:
// GET /api/categories, /api/industries, /api/locations, /api/blog-categories, /api/features
func (h *CatalogHandler) ListPublic(kind entity.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := h.uc.ListPublic(c.Request.Context(), kind)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewClassificationList(list))
	}
}

// List はダッシュボード向けに全ての分類を返します。
// GET /api/dashboard/classifications/:kind
func (h *CatalogHandler) List(c *gin.Context) {
	list, err := h.uc.ListAll(c.Request.Context(), entity.Kind(c.Param("kind")))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassificationList(list))
}

// Get は1件の分類を返します。
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	got, err := h.uc.Get(c.Request.Context(), entity.Kind(c.Param("kind")), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassificationResponse(*got))
}

// Create は分類を作成します。
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	created, err := h.uc.Create(c.Request.Context(), entity.Kind(c.Param("kind")), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewClassificationResponse(*created))
}

// Update は分類を更新します。送られたフィールドのみ変更します。
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	kind := entity.Kind(c.Param("kind"))
	current, err := h.uc.Get(c.Request.Context(), kind, id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	req := dto.NewClassificationRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	updated, err := h.uc.Update(c.Request.Context(), kind, id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewClassificationResponse(*updated))
}

// Delete は分類を削除し、参照しているレコードの参照をクリアします。
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), entity.Kind(c.Param("kind")), id); err != nil {
		apperror.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
