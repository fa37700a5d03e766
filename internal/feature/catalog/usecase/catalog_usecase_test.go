package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/feature/catalog/usecase"
	"topbrands_backend/internal/shared/apperror"
)

// mockClassificationRepository はClassificationRepositoryインターフェースのモック実装です。
type mockClassificationRepository struct {
	ListFunc     func(ctx context.Context, kind entity.Kind, activeOnly bool) ([]entity.Classification, error)
	FindByIDFunc func(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error)
	CreateFunc   func(ctx context.Context, c *entity.Classification) error
	UpdateFunc   func(ctx context.Context, c *entity.Classification) error
	DeleteFunc   func(ctx context.Context, kind entity.Kind, id uint) error
}

func (m *mockClassificationRepository) List(ctx context.Context, kind entity.Kind, activeOnly bool) ([]entity.Classification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, activeOnly)
	}
	return nil, nil
}

func (m *mockClassificationRepository) FindByID(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, kind, id)
	}
	return nil, usecase.ErrClassificationNotFound
}

func (m *mockClassificationRepository) Create(ctx context.Context, c *entity.Classification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockClassificationRepository) Update(ctx context.Context, c *entity.Classification) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockClassificationRepository) Delete(ctx context.Context, kind entity.Kind, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, kind, id)
	}
	return nil
}

// TestCatalogUsecase_ListPublic は種別ごとに有効なもののみ返すかどうかを検証します。
func TestCatalogUsecase_ListPublic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind       entity.Kind
		wantActive bool
		wantErr    error
	}{
		{kind: entity.KindCategory, wantActive: true},
		{kind: entity.KindBlogCategory, wantActive: true},
		{kind: entity.KindIndustry, wantActive: false},
		{kind: entity.KindLocation, wantActive: false},
		{kind: entity.Kind("color"), wantErr: usecase.ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			var gotActive bool
			repo := &mockClassificationRepository{
				ListFunc: func(_ context.Context, _ entity.Kind, activeOnly bool) ([]entity.Classification, error) {
					gotActive = activeOnly
					return []entity.Classification{}, nil
				},
			}
			_, err := usecase.NewCatalogUsecase(repo).ListPublic(context.Background(), tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, gotActive)
		})
	}
}

// TestCatalogUsecase_Create はスラッグ・色・国の既定値を検証します。
func TestCatalogUsecase_Create(t *testing.T) {
	t.Parallel()

	uc := usecase.NewCatalogUsecase(&mockClassificationRepository{})

	got, err := uc.Create(context.Background(), entity.KindLocation, usecase.Input{Name: " Port Harcourt "})
	require.NoError(t, err)
	assert.Equal(t, "Port Harcourt", got.Name)
	assert.Equal(t, "port-harcourt", got.Slug)
	assert.Equal(t, entity.DefaultColor, got.Color)
	assert.Equal(t, "Nigeria", got.Country)
	assert.True(t, got.IsActive)

	inactive := false
	got, err = uc.Create(context.Background(), entity.KindCategory, usecase.Input{Name: "Banking", Slug: "Banks", IsActive: &inactive, Country: "Ghana"})
	require.NoError(t, err)
	assert.Equal(t, "banks", got.Slug)
	assert.False(t, got.IsActive)
	assert.Empty(t, got.Country, "only locations carry a country")

	_, err = uc.Create(context.Background(), entity.KindCategory, usecase.Input{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

// TestCatalogUsecase_Update は存在しない分類の更新がNotFoundになることを検証します。
func TestCatalogUsecase_Update(t *testing.T) {
	t.Parallel()

	stored := &entity.Classification{ID: 1, Kind: entity.KindIndustry, Name: "Oil", Slug: "oil", IsActive: true}
	repo := &mockClassificationRepository{
		FindByIDFunc: func(_ context.Context, _ entity.Kind, id uint) (*entity.Classification, error) {
			if id == 1 {
				return stored, nil
			}
			return nil, usecase.ErrClassificationNotFound
		},
	}
	uc := usecase.NewCatalogUsecase(repo)

	got, err := uc.Update(context.Background(), entity.KindIndustry, 1, usecase.Input{Name: "Oil & Gas"})
	require.NoError(t, err)
	assert.Equal(t, "oil-and-gas", got.Slug)
	assert.True(t, got.IsActive, "unset is_active keeps the stored value")

	_, err = uc.Update(context.Background(), entity.KindIndustry, 2, usecase.Input{Name: "x"})
	assert.ErrorIs(t, err, usecase.ErrClassificationNotFound)
}
