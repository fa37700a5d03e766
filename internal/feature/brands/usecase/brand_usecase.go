package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gosimple/slug"

	"topbrands_backend/internal/feature/brands/domain/entity"
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

const (
	topTenRank      = 10
	perCategory     = 5
	mostPopularSize = 10
)

// Filter narrows brand queries. Nil pointers and empty strings mean "any".
type Filter struct {
	Year          *int
	PublishedOnly bool
	CategoryID    *uint
	CategorySlug  string
	IndustryID    *uint
	IndustrySlug  string
	IsFeatured    *bool
	IsNewEntry    *bool
	Search        string
	MaxRank       int
	// WithDetails preloads metrics, achievements and timeline.
	WithDetails bool
}

// BrandRepository abstracts the persistence layer for brands.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BrandRepository interface {
	// List returns one page of brands and the total number of matches.
	List(ctx context.Context, f Filter, ordering string, page pagination.Page) ([]entity.Brand, int64, error)
	// ListTop returns up to limit brands; limit <= 0 means no limit.
	ListTop(ctx context.Context, f Filter, ordering string, limit int) ([]entity.Brand, error)
	FindBySlug(ctx context.Context, f Filter, slug string) (*entity.Brand, error)
	FindByID(ctx context.Context, f Filter, id uint) (*entity.Brand, error)
	// Increment atomically bumps column on brand id and returns the new value.
	Increment(ctx context.Context, id uint, column string) (int64, error)
	Create(ctx context.Context, b *entity.Brand) error
	Update(ctx context.Context, b *entity.Brand) error
	Delete(ctx context.Context, id uint) error
}

// YearResolver picks the year a request applies to.
type YearResolver interface {
	ResolveEffectiveYear(ctx context.Context, requested *int) (int, error)
}

// CategoryLister lists every category, inactive ones included.
type CategoryLister interface {
	ListAll(ctx context.Context, kind catalog.Kind) ([]catalog.Classification, error)
}

// Query is the public list request.
type Query struct {
	Year       *int
	Category   string
	Industry   string
	IsFeatured *bool
	IsNewEntry *bool
	Search     string
	Ordering   string
}

// BrandUsecase provides business logic for brand rankings.
type BrandUsecase struct {
	repo       BrandRepository
	years      YearResolver
	categories CategoryLister
}

// NewBrandUsecase creates a new BrandUsecase.
func NewBrandUsecase(repo BrandRepository, years YearResolver, categories CategoryLister) *BrandUsecase {
	return &BrandUsecase{repo: repo, years: years, categories: categories}
}

// List returns published brands of the effective year matching q.
func (u *BrandUsecase) List(ctx context.Context, q Query, page pagination.Page) ([]entity.Brand, int64, error) {
	f, err := u.publicFilter(ctx, q.Year)
	if err != nil {
		return nil, 0, err
	}
	applyQuery(&f, q)
	return u.repo.List(ctx, f, q.Ordering, page)
}

// Top10 returns the brands ranked 1 to 10.
func (u *BrandUsecase) Top10(ctx context.Context, year *int) ([]entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	f.MaxRank = topTenRank
	return u.repo.ListTop(ctx, f, "", 0)
}

// Featured returns featured brands.
func (u *BrandUsecase) Featured(ctx context.Context, year *int) ([]entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	f.IsFeatured = boolPtr(true)
	return u.repo.ListTop(ctx, f, "", 0)
}

// NewEntries returns brands new to the ranking this year.
func (u *BrandUsecase) NewEntries(ctx context.Context, year *int) ([]entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	f.IsNewEntry = boolPtr(true)
	return u.repo.ListTop(ctx, f, "", 0)
}

// ByCategory groups the five best-ranked brands under each category slug.
// Inactive categories are grouped too, since brands keep pointing at them.
func (u *BrandUsecase) ByCategory(ctx context.Context, year *int) (map[string][]entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	cats, err := u.categories.ListAll(ctx, catalog.KindCategory)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make(map[string][]entity.Brand, len(cats))
	for _, c := range cats {
		cf := f
		cf.CategoryID = &c.ID
		brands, err := u.repo.ListTop(ctx, cf, "", perCategory)
		if err != nil {
			return nil, fmt.Errorf("brands for category %s: %w", c.Slug, err)
		}
		out[c.Slug] = brands
	}
	return out, nil
}

// Get returns one published brand in the effective year. slugOrID is tried
// as a slug first and then, when numeric, as a primary key.
func (u *BrandUsecase) Get(ctx context.Context, slugOrID string, year *int) (*entity.Brand, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	f.WithDetails = true
	return u.lookup(ctx, f, slugOrID)
}

// Increment bumps counter on a published brand and returns the new value.
func (u *BrandUsecase) Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error) {
	if _, ok := fields.ParseCounter(string(counter), fields.CounterViews, fields.CounterLikes, fields.CounterShares); !ok {
		return 0, ErrUnknownCounter
	}
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return 0, err
	}
	b, err := u.lookup(ctx, f, slugOrID)
	if err != nil {
		return 0, err
	}
	return u.repo.Increment(ctx, b.ID, counter.Column())
}

// Search returns up to limit published brands from any year whose title,
// subtitle or description contains term.
func (u *BrandUsecase) Search(ctx context.Context, term string, limit int) ([]entity.Brand, error) {
	return u.repo.ListTop(ctx, Filter{PublishedOnly: true, Search: term}, "", limit)
}

func (u *BrandUsecase) publicFilter(ctx context.Context, requested *int) (Filter, error) {
	year, err := u.years.ResolveEffectiveYear(ctx, requested)
	if err != nil {
		return Filter{}, fmt.Errorf("resolve year: %w", err)
	}
	return Filter{Year: &year, PublishedOnly: true}, nil
}

func (u *BrandUsecase) lookup(ctx context.Context, f Filter, slugOrID string) (*entity.Brand, error) {
	b, err := u.repo.FindBySlug(ctx, f, slugOrID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrBrandNotFound) {
		return nil, err
	}
	id, convErr := strconv.ParseUint(slugOrID, 10, 64)
	if convErr != nil {
		return nil, ErrBrandNotFound
	}
	return u.repo.FindByID(ctx, f, uint(id))
}

func applyQuery(f *Filter, q Query) {
	if id, err := strconv.ParseUint(q.Category, 10, 64); err == nil {
		v := uint(id)
		f.CategoryID = &v
	} else if q.Category != "" {
		f.CategorySlug = slug.Make(q.Category)
	}
	if id, err := strconv.ParseUint(q.Industry, 10, 64); err == nil {
		v := uint(id)
		f.IndustryID = &v
	} else if q.Industry != "" {
		f.IndustrySlug = slug.Make(q.Industry)
	}
	f.IsFeatured = q.IsFeatured
	f.IsNewEntry = q.IsNewEntry
	f.Search = q.Search
}

func boolPtr(v bool) *bool { return &v }
