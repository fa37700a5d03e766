// Package handler はblogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/transport/http/dto"
	"topbrands_backend/internal/feature/blog/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
	"topbrands_backend/internal/shared/params"
)

// PostUsecase はブログ記事のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PostUsecase interface {
	List(ctx context.Context, q usecase.Query, page pagination.Page) ([]entity.Post, int64, error)
	Featured(ctx context.Context, year *int) ([]entity.Post, error)
	Recent(ctx context.Context, year *int) ([]entity.Post, error)
	Get(ctx context.Context, slugOrID string, year *int) (*entity.Post, error)
	Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error)

	AdminList(ctx context.Context, year *int, status entity.Status, search string, page pagination.Page) ([]entity.Post, int64, error)
	AdminGet(ctx context.Context, id uint) (*entity.Post, error)
	Create(ctx context.Context, in usecase.Input) (*entity.Post, error)
	Update(ctx context.Context, id uint, in usecase.Input) (*entity.Post, error)
	Delete(ctx context.Context, id uint) error
}

// PostHandler はブログ記事のHTTPリクエストを処理します。
type PostHandler struct {
	uc     PostUsecase
	limits pagination.Limits
}

// NewPostHandler はPostHandlerを生成します。
func NewPostHandler(uc PostUsecase, limits pagination.Limits) *PostHandler {
	return &PostHandler{uc: uc, limits: limits}
}

// List は公開記事のページを返します。
//
// エンドポイント例:
// GET /api/blog?year=2025&category=news&is_featured=true&search=mtn&ordering=-views_count
func (h *PostHandler) List(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	q := usecase.Query{
		Year:       year,
		Category:   c.Query("category"),
		IsFeatured: params.Bool(c, "is_featured"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	}
	page := h.limits.FromQuery(c)
	posts, total, err := h.uc.List(c.Request.Context(), q, page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewPostList(posts)))
}

// Featured は注目記事を返します。GET /api/blog/featured
func (h *PostHandler) Featured(c *gin.Context) { h.listBy(c, h.uc.Featured) }

// Recent は最新記事を返します。GET /api/blog/recent
func (h *PostHandler) Recent(c *gin.Context) { h.listBy(c, h.uc.Recent) }

// Get は記事詳細を返します。GET /api/blog/:slug
func (h *PostHandler) Get(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	p, err := h.uc.Get(c.Request.Context(), c.Param("slug"), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostDetailResponse(*p))
}

// Increment は指定カウンターを1増やすハンドラーを生成します。
func (h *PostHandler) Increment(counter fields.Counter) gin.HandlerFunc {
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

// AdminList は状態を問わず記事を返します。GET /api/dashboard/blog?status=draft
func (h *PostHandler) AdminList(c *gin.Context) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	page := h.limits.FromQuery(c)
	posts, total, err := h.uc.AdminList(c.Request.Context(), year, entity.Status(c.Query("status")), c.Query("search"), page)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.NewResult(c, page, total, dto.NewPostList(posts)))
}

// AdminGet はIDで記事詳細を返します。
func (h *PostHandler) AdminGet(c *gin.Context) {
	id, err := params.ID(c, "id")
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	p, err := h.uc.AdminGet(c.Request.Context(), id)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostDetailResponse(*p))
}

// Create は記事を作成します。
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	p, err := h.uc.Create(c.Request.Context(), req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPostDetailResponse(*p))
}

// Update は記事を更新します。送られたフィールドのみ変更します。
func (h *PostHandler) Update(c *gin.Context) {
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
	req := dto.NewPostRequest(*current)
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.RespondBind(c, err)
		return
	}
	p, err := h.uc.Update(c.Request.Context(), id, req.Input())
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostDetailResponse(*p))
}

// Delete は記事を削除します。
func (h *PostHandler) Delete(c *gin.Context) {
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

func (h *PostHandler) listBy(c *gin.Context, fetch func(context.Context, *int) ([]entity.Post, error)) {
	year, err := params.Year(c)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	posts, err := fetch(c.Request.Context(), year)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostList(posts))
}
