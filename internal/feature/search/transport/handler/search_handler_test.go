package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brands "topbrands_backend/internal/feature/brands/domain/entity"
	"topbrands_backend/internal/feature/search/transport/handler"
	"topbrands_backend/internal/feature/search/usecase"
)

type searchFunc func(ctx context.Context, q string) (*usecase.Result, error)

func (f searchFunc) Search(ctx context.Context, q string) (*usecase.Result, error) { return f(ctx, q) }

// TestSearchHandler_Search は検索結果の形式と空クエリの400を検証します。
func TestSearchHandler_Search(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uc := searchFunc(func(_ context.Context, q string) (*usecase.Result, error) {
		if q == "" {
			return nil, usecase.ErrEmptyQuery
		}
		return &usecase.Result{Query: q, Brands: []brands.Brand{{Slug: "mtn", CurrentRank: 1}}}, nil
	})
	r := gin.New()
	r.GET("/api/search", handler.NewSearchHandler(uc).Search)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=mtn", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Query   string `json:"query"`
		Results struct {
			Brands    []map[string]any `json:"brands"`
			BlogPosts []map[string]any `json:"blog_posts"`
			Insights  []map[string]any `json:"insights"`
		} `json:"results"`
		TotalResults int `json:"total_results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "mtn", body.Query)
	assert.Len(t, body.Results.Brands, 1)
	assert.NotNil(t, body.Results.BlogPosts)
	assert.Empty(t, body.Results.BlogPosts)
	assert.Equal(t, 1, body.TotalResults)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Query parameter \"q\" is required"}`, w.Body.String())
}
