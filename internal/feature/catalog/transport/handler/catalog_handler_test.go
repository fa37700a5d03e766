package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/transport/handler"
	"topbrands_backend/internal/feature/catalog/usecase"
	"topbrands_backend/internal/shared/apperror"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.UseJSONFieldNames()
	os.Exit(m.Run())
}

// mockCatalogUsecase はCatalogUsecaseインターフェースのモック実装です。
type mockCatalogUsecase struct {
	ListPublicFunc func(ctx context.Context, kind entity.Kind) ([]entity.Classification, error)
	ListAllFunc    func(ctx context.Context, kind entity.Kind) ([]entity.Classification, error)
	CreateFunc     func(ctx context.Context, kind entity.Kind, in usecase.Input) (*entity.Classification, error)
	DeleteFunc     func(ctx context.Context, kind entity.Kind, id uint) error
	GetFunc        func(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error)
	UpdateFunc     func(ctx context.Context, kind entity.Kind, id uint, in usecase.Input) (*entity.Classification, error)
}

func (m *mockCatalogUsecase) ListPublic(ctx context.Context, kind entity.Kind) ([]entity.Classification, error) {
	return m.ListPublicFunc(ctx, kind)
}

func (m *mockCatalogUsecase) ListAll(ctx context.Context, kind entity.Kind) ([]entity.Classification, error) {
	return m.ListAllFunc(ctx, kind)
}

func (m *mockCatalogUsecase) Get(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
	if m.GetFunc == nil {
		return nil, usecase.ErrClassificationNotFound
	}
	return m.GetFunc(ctx, kind, id)
}

func (m *mockCatalogUsecase) Create(ctx context.Context, kind entity.Kind, in usecase.Input) (*entity.Classification, error) {
	return m.CreateFunc(ctx, kind, in)
}

func (m *mockCatalogUsecase) Update(ctx context.Context, kind entity.Kind, id uint, in usecase.Input) (*entity.Classification, error) {
	if m.UpdateFunc == nil {
		return nil, usecase.ErrClassificationNotFound
	}
	return m.UpdateFunc(ctx, kind, id, in)
}

func (m *mockCatalogUsecase) Delete(ctx context.Context, kind entity.Kind, id uint) error {
	return m.DeleteFunc(ctx, kind, id)
}

func newRouter(h *handler.CatalogHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/features", h.ListPublic(entity.KindCategory))
	r.GET("/api/locations", h.ListPublic(entity.KindLocation))
	r.GET("/api/dashboard/classifications/:kind", h.List)
	r.GET("/api/dashboard/classifications/:kind/:id", h.Get)
	r.POST("/api/dashboard/classifications/:kind", h.Create)
	r.PATCH("/api/dashboard/classifications/:kind/:id", h.Update)
	r.DELETE("/api/dashboard/classifications/:kind/:id", h.Delete)
	return r
}

// TestCatalogHandler_ListPublic は公開一覧が種別ごとに呼び出されることを検証します。
func TestCatalogHandler_ListPublic(t *testing.T) {
	var kinds []entity.Kind
	uc := &mockCatalogUsecase{
		ListPublicFunc: func(_ context.Context, kind entity.Kind) ([]entity.Classification, error) {
			kinds = append(kinds, kind)
			return []entity.Classification{{ID: 1, Kind: kind, Name: "Lagos", Slug: "lagos", Color: "#007751", Country: "Nigeria"}}, nil
		},
	}
	r := newRouter(handler.NewCatalogHandler(uc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/locations", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"country":"Nigeria"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/features", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []entity.Kind{entity.KindLocation, entity.KindCategory}, kinds)
}

// TestCatalogHandler_Create はリクエスト検証とステータスコードを検証します。
func TestCatalogHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		body       string
		createErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			kind:       "industry",
			body:       `{"name":"Fintech"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"slug":"fintech"`,
		},
		{
			name:       "missing name",
			kind:       "industry",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":{"name":["This field is required"]}}`,
		},
		{
			name:       "bad color",
			kind:       "category",
			body:       `{"name":"Tech","color":"green"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"color"`,
		},
		{
			name:       "duplicate",
			kind:       "industry",
			body:       `{"name":"Fintech"}`,
			createErr:  usecase.ErrDuplicateClassification,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown kind",
			kind:       "colour",
			body:       `{"name":"Fintech"}`,
			createErr:  usecase.ErrUnknownKind,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"unknown classification kind"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockCatalogUsecase{
				CreateFunc: func(_ context.Context, kind entity.Kind, in usecase.Input) (*entity.Classification, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &entity.Classification{ID: 9, Kind: kind, Name: in.Name, Slug: strings.ToLower(in.Name)}, nil
				},
			}
			r := newRouter(handler.NewCatalogHandler(uc))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/dashboard/classifications/"+tt.kind, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

// TestCatalogHandler_Delete は削除成功時に204を返し、不正なIDで400を返すことを検証します。
func TestCatalogHandler_Delete(t *testing.T) {
	uc := &mockCatalogUsecase{
		DeleteFunc: func(_ context.Context, kind entity.Kind, id uint) error {
			assert.Equal(t, entity.KindCategory, kind)
			if id == 404 {
				return usecase.ErrClassificationNotFound
			}
			return nil
		},
	}
	r := newRouter(handler.NewCatalogHandler(uc))

	for target, want := range map[string]int{
		"/api/dashboard/classifications/category/3":   http.StatusNoContent,
		"/api/dashboard/classifications/category/404": http.StatusNotFound,
		"/api/dashboard/classifications/category/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
		assert.Equal(t, want, w.Code, target)
	}
}

// TestCatalogHandler_Update_Partial は送られなかったフィールドが既存値のまま残ることを検証します。
func TestCatalogHandler_Update_Partial(t *testing.T) {
	var got usecase.Input
	uc := &mockCatalogUsecase{
		GetFunc: func(_ context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
			return &entity.Classification{ID: id, Kind: kind, Name: "Lagos", Slug: "lagos", Description: "commercial hub", Color: "#123456", Country: "Nigeria", State: "Lagos", IsActive: true}, nil
		},
		UpdateFunc: func(_ context.Context, kind entity.Kind, id uint, in usecase.Input) (*entity.Classification, error) {
			got = in
			return &entity.Classification{ID: id, Kind: kind, Name: in.Name, Slug: in.Slug, Color: in.Color, IsActive: *in.IsActive}, nil
		},
	}
	r := newRouter(handler.NewCatalogHandler(uc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/classifications/location/3", strings.NewReader(`{"is_active":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Lagos", got.Name)
	assert.Equal(t, "commercial hub", got.Description)
	assert.Equal(t, "#123456", got.Color)
	assert.Equal(t, "Lagos", got.State)
	require.NotNil(t, got.IsActive)
	assert.False(t, *got.IsActive)
}

// TestCatalogHandler_Update_NotFound は存在しない分類の更新が404になることを検証します。
func TestCatalogHandler_Update_NotFound(t *testing.T) {
	r := newRouter(handler.NewCatalogHandler(&mockCatalogUsecase{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/classifications/location/99", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
