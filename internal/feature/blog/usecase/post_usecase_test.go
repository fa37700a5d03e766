package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/usecase"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

// mockPostRepository はPostRepositoryインターフェースのモック実装です。
type mockPostRepository struct {
	ListFunc       func(ctx context.Context, f usecase.Filter, ordering string, page pagination.Page) ([]entity.Post, int64, error)
	ListTopFunc    func(ctx context.Context, f usecase.Filter, ordering string, limit int) ([]entity.Post, error)
	FindBySlugFunc func(ctx context.Context, f usecase.Filter, slug string) (*entity.Post, error)
	FindByIDFunc   func(ctx context.Context, f usecase.Filter, id uint) (*entity.Post, error)
	IncrementFunc  func(ctx context.Context, id uint, column string) (int64, error)
	CreateFunc     func(ctx context.Context, p *entity.Post) error
}

func (m *mockPostRepository) List(ctx context.Context, f usecase.Filter, ordering string, page pagination.Page) ([]entity.Post, int64, error) {
	return m.ListFunc(ctx, f, ordering, page)
}

func (m *mockPostRepository) ListTop(ctx context.Context, f usecase.Filter, ordering string, limit int) ([]entity.Post, error) {
	return m.ListTopFunc(ctx, f, ordering, limit)
}

func (m *mockPostRepository) FindBySlug(ctx context.Context, f usecase.Filter, slug string) (*entity.Post, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, f, slug)
	}
	return nil, usecase.ErrPostNotFound
}

func (m *mockPostRepository) FindByID(ctx context.Context, f usecase.Filter, id uint) (*entity.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, f, id)
	}
	return nil, usecase.ErrPostNotFound
}

func (m *mockPostRepository) Increment(ctx context.Context, id uint, column string) (int64, error) {
	return m.IncrementFunc(ctx, id, column)
}

func (m *mockPostRepository) Create(ctx context.Context, p *entity.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPostRepository) Update(context.Context, *entity.Post) error { return nil }
func (m *mockPostRepository) Delete(context.Context, uint) error         { return nil }

type fixedYear int

func (y fixedYear) ResolveEffectiveYear(_ context.Context, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}
	return int(y), nil
}

// TestPostUsecase_List は公開条件と年・カテゴリの変換を検証します。
func TestPostUsecase_List(t *testing.T) {
	var got usecase.Filter
	repo := &mockPostRepository{
		ListFunc: func(_ context.Context, f usecase.Filter, _ string, _ pagination.Page) ([]entity.Post, int64, error) {
			got = f
			return nil, 0, nil
		},
	}
	uc := usecase.NewPostUsecase(repo, fixedYear(2025))

	_, _, err := uc.List(context.Background(), usecase.Query{Category: "Industry News", Search: "mtn"}, pagination.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.True(t, got.PublicOnly)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2025, *got.Year)
	assert.Equal(t, "industry-news", got.CategorySlug)
	assert.Equal(t, "mtn", got.Search)
}

// TestPostUsecase_FeaturedAndRecent は件数上限を検証します。
func TestPostUsecase_FeaturedAndRecent(t *testing.T) {
	var limits []int
	var featured []bool
	repo := &mockPostRepository{
		ListTopFunc: func(_ context.Context, f usecase.Filter, _ string, limit int) ([]entity.Post, error) {
			limits = append(limits, limit)
			featured = append(featured, f.IsFeatured != nil && *f.IsFeatured)
			return nil, nil
		},
	}
	uc := usecase.NewPostUsecase(repo, fixedYear(2025))

	_, err := uc.Featured(context.Background(), nil)
	require.NoError(t, err)
	_, err = uc.Recent(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 8}, limits)
	assert.Equal(t, []bool{true, false}, featured)
}

// TestPostUsecase_Increment はカウンターの検証と数値IDへのフォールバックを確認します。
func TestPostUsecase_Increment(t *testing.T) {
	repo := &mockPostRepository{
		FindByIDFunc: func(_ context.Context, f usecase.Filter, id uint) (*entity.Post, error) {
			assert.True(t, f.PublicOnly)
			return &entity.Post{ID: id}, nil
		},
		IncrementFunc: func(_ context.Context, id uint, column string) (int64, error) {
			assert.Equal(t, uint(7), id)
			assert.Equal(t, "likes_count", column)
			return 3, nil
		},
	}
	uc := usecase.NewPostUsecase(repo, fixedYear(2025))

	v, err := uc.Increment(context.Background(), "7", fields.CounterLikes, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = uc.Increment(context.Background(), "7", fields.CounterDownloads, nil)
	assert.ErrorIs(t, err, usecase.ErrUnknownCounter)

	_, err = uc.Increment(context.Background(), "no-such-post", fields.CounterViews, nil)
	assert.ErrorIs(t, err, usecase.ErrPostNotFound)
}

// TestPostUsecase_Create は既定値と入力検証を確認します。
func TestPostUsecase_Create(t *testing.T) {
	uc := usecase.NewPostUsecase(&mockPostRepository{}, fixedYear(2025))

	p, err := uc.Create(context.Background(), usecase.Input{Title: "Top Brands of 2025", IsPublished: true, AllowComments: true})
	require.NoError(t, err)
	assert.Equal(t, 2025, p.Year)
	assert.Equal(t, "top-brands-of-2025", p.Slug)
	assert.Equal(t, entity.StatusDraft, p.Status)
	assert.Equal(t, entity.DefaultReadTime, p.ReadTime)
	assert.True(t, p.AllowComments)
	assert.NotNil(t, p.PublishedAt)

	_, err = uc.Create(context.Background(), usecase.Input{Title: " ", Status: "pending"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "title")
	assert.Contains(t, ae.Fields, "status")

	_, err = uc.Create(context.Background(), usecase.Input{Title: "Tags", Tags: "ok, " + strings.Repeat("x", entity.MaxTagLength+1)})
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "tags")
}
