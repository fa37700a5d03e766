package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/shared/apperror"
)

// ClassificationRepository abstracts the persistence layer for classifications.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ClassificationRepository interface {
	// List returns the classifications of kind ordered by name.
	List(ctx context.Context, kind entity.Kind, activeOnly bool) ([]entity.Classification, error)
	FindByID(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error)
	Create(ctx context.Context, c *entity.Classification) error
	Update(ctx context.Context, c *entity.Classification) error
	// Delete removes the classification and clears every reference to it.
	Delete(ctx context.Context, kind entity.Kind, id uint) error
}

// Input carries the editable classification fields.
type Input struct {
	Name        string
	Slug        string
	Description string
	Color       string
	Icon        string
	IsActive    *bool
	Country     string
	State       string
	City        string
}

// CatalogUsecase provides business logic for classifications.
type CatalogUsecase struct {
	repo ClassificationRepository
}

// NewCatalogUsecase creates a new CatalogUsecase with the given repository.
func NewCatalogUsecase(repo ClassificationRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

// ListPublic returns what the public API exposes for kind.
// Categories and blog categories are filtered to active ones; industries and
// locations are listed in full.
func (u *CatalogUsecase) ListPublic(ctx context.Context, kind entity.Kind) ([]entity.Classification, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	activeOnly := kind == entity.KindCategory || kind == entity.KindBlogCategory
	return u.repo.List(ctx, kind, activeOnly)
}

// ListAll returns every classification of kind, active or not.
func (u *CatalogUsecase) ListAll(ctx context.Context, kind entity.Kind) ([]entity.Classification, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return u.repo.List(ctx, kind, false)
}

// Get returns one classification.
func (u *CatalogUsecase) Get(ctx context.Context, kind entity.Kind, id uint) (*entity.Classification, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return u.repo.FindByID(ctx, kind, id)
}

// Create validates in and stores a new classification of kind.
func (u *CatalogUsecase) Create(ctx context.Context, kind entity.Kind, in Input) (*entity.Classification, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	c := &entity.Classification{Kind: kind, IsActive: true}
	if err := apply(c, in); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create %s: %w", kind, err)
	}
	return c, nil
}

// Update replaces the editable fields of an existing classification.
func (u *CatalogUsecase) Update(ctx context.Context, kind entity.Kind, id uint, in Input) (*entity.Classification, error) {
	c, err := u.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c, in); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	return c, nil
}

// Delete removes a classification. Entities referring to it keep existing
// with the reference cleared.
func (u *CatalogUsecase) Delete(ctx context.Context, kind entity.Kind, id uint) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	return u.repo.Delete(ctx, kind, id)
}

func apply(c *entity.Classification, in Input) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperror.Invalid(map[string][]string{"name": {"This field is required"}})
	}
	c.Name = name
	c.Slug = slug.Make(in.Slug)
	if c.Slug == "" {
		c.Slug = slug.Make(name)
	}
	c.Description = in.Description
	c.Color = in.Color
	if c.Color == "" {
		c.Color = entity.DefaultColor
	}
	c.Icon = in.Icon
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if c.Kind == entity.KindLocation {
		c.Country = in.Country
		if c.Country == "" {
			c.Country = "Nigeria"
		}
		c.State = in.State
		c.City = in.City
	}
	return nil
}
