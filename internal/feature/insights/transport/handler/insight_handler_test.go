package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/insights/transport/handler"
	"topbrands_backend/internal/feature/insights/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.UseJSONFieldNames()
	os.Exit(m.Run())
}

// mockInsightUsecase はInsightUsecaseインターフェースのモック実装です。
type mockInsightUsecase struct {
	ListFunc      func(ctx context.Context, q usecase.Query, page pagination.Page) ([]entity.Insight, int64, error)
	ByTypeFunc    func(ctx context.Context, year *int) (map[entity.Type]usecase.TypeGroup, error)
	GetFunc       func(ctx context.Context, slugOrID string, year *int) (*entity.Insight, error)
	IncrementFunc func(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error)
	CreateFunc    func(ctx context.Context, in usecase.Input) (*entity.Insight, error)
	AdminGetFunc  func(ctx context.Context, id uint) (*entity.Insight, error)
	UpdateFunc    func(ctx context.Context, id uint, in usecase.Input) (*entity.Insight, error)
}

func (m *mockInsightUsecase) List(ctx context.Context, q usecase.Query, page pagination.Page) ([]entity.Insight, int64, error) {
	return m.ListFunc(ctx, q, page)
}
func (m *mockInsightUsecase) Featured(context.Context, *int) ([]entity.Insight, error) {
	return nil, nil
}
func (m *mockInsightUsecase) ByType(ctx context.Context, year *int) (map[entity.Type]usecase.TypeGroup, error) {
	return m.ByTypeFunc(ctx, year)
}
func (m *mockInsightUsecase) Get(ctx context.Context, slugOrID string, year *int) (*entity.Insight, error) {
	return m.GetFunc(ctx, slugOrID, year)
}
func (m *mockInsightUsecase) Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error) {
	return m.IncrementFunc(ctx, slugOrID, counter, year)
}
func (m *mockInsightUsecase) AdminList(context.Context, *int, string, pagination.Page) ([]entity.Insight, int64, error) {
	return nil, 0, nil
}
func (m *mockInsightUsecase) AdminGet(ctx context.Context, id uint) (*entity.Insight, error) {
	if m.AdminGetFunc == nil {
		return nil, usecase.ErrInsightNotFound
	}
	return m.AdminGetFunc(ctx, id)
}
func (m *mockInsightUsecase) Create(ctx context.Context, in usecase.Input) (*entity.Insight, error) {
	return m.CreateFunc(ctx, in)
}
func (m *mockInsightUsecase) Update(ctx context.Context, id uint, in usecase.Input) (*entity.Insight, error) {
	if m.UpdateFunc == nil {
		return nil, usecase.ErrInsightNotFound
	}
	return m.UpdateFunc(ctx, id, in)
}
func (m *mockInsightUsecase) Delete(context.Context, uint) error { return nil }

func newRouter(uc handler.InsightUsecase) *gin.Engine {
	h := handler.NewInsightHandler(uc, pagination.DefaultLimits)
	r := gin.New()
	r.GET("/api/insights", h.List)
	r.GET("/api/insights/by_type", h.ByType)
	r.GET("/api/insights/:slug", h.Get)
	r.POST("/api/insights/:slug/increment_downloads", h.Increment(fields.CounterDownloads))
	r.POST("/api/dashboard/insights", h.Create)
	r.PUT("/api/dashboard/insights/:id", h.Update)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// TestInsightHandler_List は種別とプレミアムのクエリ変換を検証します。
func TestInsightHandler_List(t *testing.T) {
	uc := &mockInsightUsecase{
		ListFunc: func(_ context.Context, q usecase.Query, _ pagination.Page) ([]entity.Insight, int64, error) {
			assert.Equal(t, "forecast", q.InsightType)
			require.NotNil(t, q.IsPremium)
			assert.False(t, *q.IsPremium)
			return []entity.Insight{{ID: 1, Slug: "outlook", InsightType: entity.TypeForecast}}, 1, nil
		},
	}
	w := do(newRouter(uc), http.MethodGet, "/api/insights?insight_type=forecast&is_premium=false", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int64 `json:"count"`
		Results []struct {
			InsightType    string `json:"insight_type"`
			InsightDisplay string `json:"insight_type_display"`
			FeaturedImage  string `json:"featured_image"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Count)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Forecast", body.Results[0].InsightDisplay)
	assert.Equal(t, "/media/insights/images/outlook.png", body.Results[0].FeaturedImage)
}

// TestInsightHandler_ByType は種別キーのグループ形式を検証します。
func TestInsightHandler_ByType(t *testing.T) {
	uc := &mockInsightUsecase{ByTypeFunc: func(context.Context, *int) (map[entity.Type]usecase.TypeGroup, error) {
		return map[entity.Type]usecase.TypeGroup{
			entity.TypeForecast: {Name: "Forecast", Insights: []entity.Insight{{Slug: "outlook"}}},
		}, nil
	}}
	w := do(newRouter(uc), http.MethodGet, "/api/insights/by_type", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]struct {
		Name     string `json:"name"`
		Insights []struct {
			Slug string `json:"slug"`
		} `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "forecast")
	assert.Equal(t, "Forecast", body["forecast"].Name)
	assert.Equal(t, "outlook", body["forecast"].Insights[0].Slug)
}

// TestInsightHandler_Get は詳細の主要な発見とレポートファイルを検証します。
func TestInsightHandler_Get(t *testing.T) {
	uc := &mockInsightUsecase{GetFunc: func(_ context.Context, slug string, _ *int) (*entity.Insight, error) {
		if slug != "outlook" {
			return nil, usecase.ErrInsightNotFound
		}
		return &entity.Insight{
			Slug:        "outlook",
			KeyFindings: []entity.KeyFinding{{Finding: "Growth", ImpactLevel: entity.ImpactHigh}},
		}, nil
	}}
	r := newRouter(uc)

	w := do(r, http.MethodGet, "/api/insights/outlook", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["report_file"])
	assert.Equal(t, []any{}, body["metrics"])
	assert.Len(t, body["key_findings"], 1)

	w = do(r, http.MethodGet, "/api/insights/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestInsightHandler_IncrementDownloads はdownload_countキーで返すことを検証します。
func TestInsightHandler_IncrementDownloads(t *testing.T) {
	uc := &mockInsightUsecase{IncrementFunc: func(context.Context, string, fields.Counter, *int) (int64, error) {
		return 42, nil
	}}
	w := do(newRouter(uc), http.MethodPost, "/api/insights/outlook/increment_downloads", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"download_count":42}`, w.Body.String())
}

// TestInsightHandler_Create は子要素のバリデーションと変換を検証します。
func TestInsightHandler_Create(t *testing.T) {
	var got usecase.Input
	uc := &mockInsightUsecase{CreateFunc: func(_ context.Context, in usecase.Input) (*entity.Insight, error) {
		got = in
		return &entity.Insight{ID: 1, Title: in.Title, Slug: "pulse"}, nil
	}}
	r := newRouter(uc)

	w := do(r, http.MethodPost, "/api/dashboard/insights",
		`{"title":"Pulse","metrics":[{"label":"NPS","value":"61"}],"key_findings":[{"finding":"Loyalty up","impact_level":"high"}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, got.IsPublished)
	require.Len(t, got.Metrics, 1)
	assert.Equal(t, "stable", got.Metrics[0].Trend)
	require.Len(t, got.KeyFindings, 1)
	assert.Equal(t, entity.ImpactHigh, got.KeyFindings[0].ImpactLevel)

	w = do(r, http.MethodPost, "/api/dashboard/insights", `{"title":"Pulse","insight_type":"gossip"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insight_type")
}

// TestInsightHandler_Update_Partial は省略したフィールドと詳細行が保持されることを検証します。
func TestInsightHandler_Update_Partial(t *testing.T) {
	current := &entity.Insight{
		ID:          4,
		Year:        2025,
		Title:       "Banking outlook",
		Slug:        "banking-outlook",
		Content:     "full report",
		InsightType: entity.TypeForecast,
		SampleSize:  "1,200",
		IsPremium:   true,
		Publication: fields.Publication{IsPublished: true},
	}
	var got usecase.Input
	uc := &mockInsightUsecase{
		AdminGetFunc: func(context.Context, uint) (*entity.Insight, error) { return current, nil },
		UpdateFunc: func(_ context.Context, _ uint, in usecase.Input) (*entity.Insight, error) {
			got = in
			return &entity.Insight{ID: 4, Title: in.Title, InsightType: in.InsightType}, nil
		},
	}
	r := newRouter(uc)

	w := do(r, http.MethodPut, "/api/dashboard/insights/4", `{"is_featured":true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, got.IsFeatured)
	assert.Equal(t, "Banking outlook", got.Title)
	assert.Equal(t, "full report", got.Content)
	assert.Equal(t, entity.TypeForecast, got.InsightType)
	assert.Equal(t, "1,200", got.SampleSize)
	assert.True(t, got.IsPremium)
	assert.True(t, got.IsPublished)
	assert.Nil(t, got.Metrics, "omitted metrics keep the stored rows")
	assert.Nil(t, got.KeyFindings)
}
