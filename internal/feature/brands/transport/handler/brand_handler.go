// Package handler はbrandsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/brands/domain/entity"
	"topbrands_backend/internal/feature/brands/transport/http/dto"
	"topbrands_backend/internal/feature/brands/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
	"topbrands_backend/internal/shared/params"
)

// BrandUsecase はブランド操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BrandUsecase interface {
	List(ctx context.Context, q usecase.Query, page pagination.Page) ([]entity.Brand, int64, error)
	Top10(ctx context.Context, year *int) ([]entity.Brand, error)
	Featured(ctx context.Context, year *int) ([]entity.Brand, error)
	NewEntries(ctx context.Context, year *int) ([]entity.Brand, error)
	ByCategory(ctx context.Context, year *int) (map[string][]entity.Brand, error)
	MostPopular(ctx context.Context, year *int) ([]entity.Brand, error)
	Get(ctx context.Context, slugOrID string, year *int) (*entity.Brand, error)
	Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error)

	AdminList(ctx context.Context, year *int, search string, page pagination.Page) ([]entity.Brand, int64, error)
	AdminGet(ctx context.Context, id uint) (*entity.Brand, error)
	Create(ctx context.Context, in usecase.Input) (*entity.Brand, error)
	Update(ctx context.Context, id uint, in usecase.Input) (*entity.Brand, error)
	Delete(ctx context.Context, id uint) error
}

// BrandHandler はブランドのHTTPリクエストを処理します。
type BrandHandler struct {
	uc     BrandUsecase
	limits pagination.Limits
}

// NewBrandHandler は指定されたusecaseとページサイズ上限でBrandHandlerを生成します。
func NewBrandHandler(uc BrandUsecase, limits pagination.Limits) *BrandHandler {
	return &BrandHandler{uc: uc, limits: limits}
}

// List は公開ブランドのページを返します。
//
// エンドポイント例:
// GET /api/brands?year=2025&category=technology&industry=telecom&is_featured=true&search=mtn&ordering=-brand_value&page=2
func (h *BrandHandler) List(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	q := usecase.Query{
		Year:       year,
		Category:   c.Query("category"),
		Industry:   c.Query("industry"),
		IsFeatured: params.Bool(c, "is_featured"),
		IsNewEntry: params.Bool(c, "is_new_entry"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	page := h.limits.FromQuery(c)

	brands, total, err := h.uc.List(c.Request.Context(), q, page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewBrandList(brands)))
}

// Top10 は上位10ブランドを返します。GET /api/brands/top_10
func (h *BrandHandler) Top10(c *gin.Context) { h.listBy(c, h.uc.Top10) }

// Featured は注目ブランドを返します。GET /api/brands/featured
func (h *BrandHandler) Featured(c *gin.Context) { h.listBy(c, h.uc.Featured) }

// NewEntries は新規ランクインのブランドを返します。GET /api/brands/new_entries
func (h *BrandHandler) NewEntries(c *gin.Context) { h.listBy(c, h.uc.NewEntries) }

// MostPopular は人気順の上位10ブランドを返します。GET /api/brands/most_popular
func (h *BrandHandler) MostPopular(c *gin.Context) { h.listBy(c, h.uc.MostPopular) }

// ByCategory はカテゴリスラッグごとに上位5ブランドを返します。GET /api/brands/by_category
func (h *BrandHandler) ByCategory(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	groups, err := h.uc.ByCategory(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	out := make(map[string][]dto.BrandResponse, len(groups))
	for slug, brands := range groups {
		out[slug] = dto.NewBrandList(brands)
	}
	c.JSON(http.StatusOK, out)
}

// Get はスラッグまたはIDでブランド詳細を返します。GET /api/brands/:slug
func (h *BrandHandler) Get(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	b, err := h.uc.Get(c.Request.Context(), c.Param("slug"), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrandDetailResponse(*b))
}

// Increment は指定カウンターを1増やすハンドラーを生成します。
//
// エンドポイント例:
// POST /api/brands/:slug/increment_views → {"views_count": 101}
func (h *BrandHandler) Increment(counter fields.Counter) gin.HandlerFunc {
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

func (h *BrandHandler) listBy(c *gin.Context, fetch func(context.Context, *int) ([]entity.Brand, error)) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	brands, err := fetch(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBrandList(brands))
}
