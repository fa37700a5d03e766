// Package handler は横断検索のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	blogdto "topbrands_backend/internal/feature/blog/transport/http/dto"
	branddto "topbrands_backend/internal/feature/brands/transport/http/dto"
	insightdto "topbrands_backend/internal/feature/insights/transport/http/dto"
	"topbrands_backend/internal/feature/search/usecase"
	"topbrands_backend/internal/shared/apperror"
)

// SearchUsecase は横断検索のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, q string) (*usecase.Result, error)
}

// SearchResults は種別ごとの検索結果です。
type SearchResults struct {
	Brands    []branddto.BrandResponse     `json:"brands"`
	BlogPosts []blogdto.PostResponse       `json:"blog_posts"`
	Insights  []insightdto.InsightResponse `json:"insights"`
}

// SearchResponse は検索APIのレスポンスです。
type SearchResponse struct {
	Query        string        `json:"query"`
	Results      SearchResults `json:"results"`
	TotalResults int           `json:"total_results"`
}

// SearchHandler は横断検索を処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler はSearchHandlerを生成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search はブランド・記事・インサイトを横断検索します。
//
// エンドポイント例:
// GET /api/search?q=mtn
func (h *SearchHandler) Search(c *gin.Context) {
	res, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{
		Query: res.Query,
		Results: SearchResults{
			Brands:    branddto.NewBrandList(res.Brands),
			BlogPosts: blogdto.NewPostList(res.BlogPosts),
			Insights:  insightdto.NewInsightList(res.Insights),
		},
		TotalResults: res.Total(),
	})
}
