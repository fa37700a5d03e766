package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/feature/blog/usecase"
)

// TestTagGorm_RegisteredFromPosts は記事の保存でタグが重複なく登録されることを検証します。
func TestTagGorm_RegisteredFromPosts(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	tags := NewTagRepository(db)
	ctx := context.Background()

	p := entity.Post{Year: 2025, Title: "Telecom", Slug: "telecom", Tags: "Telecom, Branding"}
	require.NoError(t, posts.Create(ctx, &p))

	p.Tags = "Branding, Fintech Trends,  "
	require.NoError(t, posts.Update(ctx, &p))

	other := entity.Post{Year: 2025, Title: "Other", Slug: "other", Tags: "telecom"}
	require.NoError(t, posts.Create(ctx, &other), "a name whose slug exists is skipped")

	list, err := tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Branding", list[0].Name)
	assert.Equal(t, "Fintech Trends", list[1].Name)
	assert.Equal(t, "fintech-trends", list[1].Slug)
	assert.Equal(t, "Telecom", list[2].Name)

	got, err := tags.FindByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "branding", got.Slug)

	_, err = tags.FindByID(ctx, 999)
	assert.ErrorIs(t, err, usecase.ErrTagNotFound)
}
