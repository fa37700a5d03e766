package usecase

import (
	"context"

	"topbrands_backend/internal/feature/blog/domain/entity"
)

// TagRepository abstracts the read side of blog tags. Tags are written by
// PostRepository when a post is saved.
type TagRepository interface {
	List(ctx context.Context) ([]entity.Tag, error)
	FindByID(ctx context.Context, id uint) (*entity.Tag, error)
}

// TagUsecase serves the dashboard tag picker.
type TagUsecase struct {
	repo TagRepository
}

// NewTagUsecase creates a new TagUsecase.
func NewTagUsecase(repo TagRepository) *TagUsecase {
	return &TagUsecase{repo: repo}
}

// List returns every tag ordered by name.
func (u *TagUsecase) List(ctx context.Context) ([]entity.Tag, error) {
	return u.repo.List(ctx)
}

// Get returns tag id.
func (u *TagUsecase) Get(ctx context.Context, id uint) (*entity.Tag, error) {
	return u.repo.FindByID(ctx, id)
}
