// Package handler はinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/insights/transport/http/dto"
	"topbrands_backend/internal/feature/insights/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
	"topbrands_backend/internal/shared/params"
)

// InsightUsecase はインサイトのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type InsightUsecase interface {
	List(ctx context.Context, q usecase.Query, page pagination.Page) ([]entity.Insight, int64, error)
	Featured(ctx context.Context, year *int) ([]entity.Insight, error)
	ByType(ctx context.Context, year *int) (map[entity.Type]usecase.TypeGroup, error)
	Get(ctx context.Context, slugOrID string, year *int) (*entity.Insight, error)
	Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error)

	AdminList(ctx context.Context, year *int, search string, page pagination.Page) ([]entity.Insight, int64, error)
	AdminGet(ctx context.Context, id uint) (*entity.Insight, error)
	Create(ctx context.Context, in usecase.Input) (*entity.Insight, error)
	Update(ctx context.Context, id uint, in usecase.Input) (*entity.Insight, error)
	Delete(ctx context.Context, id uint) error
}

// InsightHandler はインサイトのHTTPリクエストを処理します。
type InsightHandler struct {
	uc     InsightUsecase
	limits pagination.Limits
}

// NewInsightHandler はInsightHandlerを生成します。
func NewInsightHandler(uc InsightUsecase, limits pagination.Limits) *InsightHandler {
	return &InsightHandler{uc: uc, limits: limits}
}

// List は公開インサイトのページを返します。
//
// エンドポイント例:
// GET /api/insights?year=2025&insight_type=forecast&is_premium=false&search=telecom
func (h *InsightHandler) List(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	q := usecase.Query{
		Year:        year,
		Category:    c.Query("category"),
		InsightType: c.Query("insight_type"),
		IsFeatured:  params.Bool(c, "is_featured"),
		IsPremium:   params.Bool(c, "is_premium"),
		Search:      c.Query("search"),
		Ordering:    c.Query("ordering"),
	}
	page := h.limits.FromQuery(c)
	items, total, err := h.uc.List(c.Request.Context(), q, page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewInsightList(items)))
}

// Featured は注目インサイトを返します。GET /api/insights/featured
func (h *InsightHandler) Featured(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	items, err := h.uc.Featured(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInsightList(items))
}

// ByType は種別ごとの最新インサイトを返します。
//
// エンドポイント例:
// GET /api/insights/by_type → {"forecast": {"name": "Forecast", "insights": [...]}}
func (h *InsightHandler) ByType(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	groups, err := h.uc.ByType(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTypeGroups(groups))
}

// Get はインサイト詳細を返します。GET /api/insights/:slug
func (h *InsightHandler) Get(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	i, err := h.uc.Get(c.Request.Context(), c.Param("slug"), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInsightDetailResponse(*i))
}

// Increment は指定カウンターを1増やすハンドラーを生成します。
//
// エンドポイント例:
// POST /api/insights/:slug/increment_downloads → {"download_count": 42}
func (h *InsightHandler) Increment(counter fields.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := params.Year(c)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		v, err := h.uc.Increment(c.Request.Context(), c.Param("slug"), counter, year)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.IncrementResponse{counter.Column(): v})
	}
}

// AdminList は公開状態を問わずインサイトを返します。
func (h *InsightHandler) AdminList(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	page := h.limits.FromQuery(c)
	items, total, err := h.uc.AdminList(c.Request.Context(), year, c.Query("search"), page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewInsightList(items)))
}

// AdminGet はIDでインサイト詳細を返します。
func (h *InsightHandler) AdminGet(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	i, err := h.uc.AdminGet(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInsightDetailResponse(*i))
}

// Create はインサイトを作成します。
func (h *InsightHandler) Create(c *gin.Context) {
	var req dto.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	i, err := h.uc.Create(c.Request.Context(), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewInsightDetailResponse(*i))
}

// Update はインサイトを更新します。送られたフィールドのみ変更します。
func (h *InsightHandler) Update(c *gin.Context) {
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
	req := dto.NewInsightRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	i, err := h.uc.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewInsightDetailResponse(*i))
}

// Delete はインサイトを削除します。
func (h *InsightHandler) Delete(c *gin.Context) {
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
