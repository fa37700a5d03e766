package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"topbrands_backend/internal/feature/blog/domain/entity"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

const (
	featuredSize = 5
	recentSize   = 8
)

// Filter narrows post queries. Nil pointers and empty strings mean "any".
type Filter struct {
	Year *int
	// PublicOnly requires both the publication flag and StatusPublished.
	PublicOnly   bool
	CategoryID   *uint
	CategorySlug string
	IsFeatured   *bool
	Status       entity.Status
	Search       string
}

// PostRepository abstracts the persistence layer for blog posts.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PostRepository interface {
	List(ctx context.Context, f Filter, ordering string, page pagination.Page) ([]entity.Post, int64, error)
	// ListTop returns up to limit posts; limit <= 0 means no limit.
	ListTop(ctx context.Context, f Filter, ordering string, limit int) ([]entity.Post, error)
	FindBySlug(ctx context.Context, f Filter, slug string) (*entity.Post, error)
	FindByID(ctx context.Context, f Filter, id uint) (*entity.Post, error)
	Increment(ctx context.Context, id uint, column string) (int64, error)
	Create(ctx context.Context, p *entity.Post) error
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id uint) error
}

// YearResolver picks the year a request applies to.
type YearResolver interface {
	ResolveEffectiveYear(ctx context.Context, requested *int) (int, error)
}

// Query is the public list request.
type Query struct {
	Year       *int
	Category   string
	IsFeatured *bool
	Search     string
	Ordering   string
}

// Input carries the editable post fields for the dashboard.
type Input struct {
	Year             *int
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImage    string
	FeaturedImageAlt string
	AuthorName       string
	CategoryID       *uint
	Status           entity.Status
	ReadTime         int
	IsFeatured       bool
	AllowComments    bool
	Tags             string
	IsPublished      bool
	SEO              fields.SEO
}

// Validate reports field-level problems with in.
func (in Input) Validate() error {
	problems := apperror.FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		problems.Add("title", "This field is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		problems.Add("status", "Must be one of: draft published archived")
	}
	if in.ReadTime < 0 {
		problems.Add("read_time", "Ensure this value is greater than or equal to 0")
	}
	for _, t := range entity.SplitTags(in.Tags) {
		if utf8.RuneCountInString(t) > entity.MaxTagLength {
			problems.Add("tags", fmt.Sprintf("Ensure each tag has no more than %d characters", entity.MaxTagLength))
			break
		}
	}
	return problems.Err()
}

// PostUsecase provides business logic for blog posts.
type PostUsecase struct {
	repo  PostRepository
	years YearResolver
}

// NewPostUsecase creates a new PostUsecase.
func NewPostUsecase(repo PostRepository, years YearResolver) *PostUsecase {
	return &PostUsecase{repo: repo, years: years}
}

// List returns public posts of the effective year matching q.
func (u *PostUsecase) List(ctx context.Context, q Query, page pagination.Page) ([]entity.Post, int64, error) {
	f, err := u.publicFilter(ctx, q.Year)
	if err != nil {
		return nil, 0, err
	}
	if id, err := strconv.ParseUint(q.Category, 10, 64); err == nil {
		v := uint(id)
		f.CategoryID = &v
	} else if q.Category != "" {
		f.CategorySlug = slug.Make(q.Category)
	}
	f.IsFeatured = q.IsFeatured
	f.Search = q.Search
	return u.repo.List(ctx, f, q.Ordering, page)
}

// Featured returns the five latest featured posts.
func (u *PostUsecase) Featured(ctx context.Context, year *int) ([]entity.Post, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	featured := true
	f.IsFeatured = &featured
	return u.repo.ListTop(ctx, f, "", featuredSize)
}

// Recent returns the eight latest posts.
func (u *PostUsecase) Recent(ctx context.Context, year *int) ([]entity.Post, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	return u.repo.ListTop(ctx, f, "", recentSize)
}

// Get returns one public post by slug, or by id when slugOrID is numeric.
func (u *PostUsecase) Get(ctx context.Context, slugOrID string, year *int) (*entity.Post, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	return u.lookup(ctx, f, slugOrID)
}

// Increment bumps counter on a public post and returns the new value.
func (u *PostUsecase) Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error) {
	if _, ok := fields.ParseCounter(string(counter), fields.CounterViews, fields.CounterLikes, fields.CounterShares); !ok {
		return 0, ErrUnknownCounter
	}
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return 0, err
	}
	p, err := u.lookup(ctx, f, slugOrID)
	if err != nil {
		return 0, err
	}
	return u.repo.Increment(ctx, p.ID, counter.Column())
}

// Search returns up to limit public posts from any year.
func (u *PostUsecase) Search(ctx context.Context, term string, limit int) ([]entity.Post, error) {
	return u.repo.ListTop(ctx, Filter{PublicOnly: true, Search: term}, "", limit)
}

// AdminList returns posts in any state. A nil year lists every year.
func (u *PostUsecase) AdminList(ctx context.Context, year *int, status entity.Status, search string, page pagination.Page) ([]entity.Post, int64, error) {
	return u.repo.List(ctx, Filter{Year: year, Status: status, Search: search}, "", page)
}

// AdminGet returns a post by id regardless of state.
func (u *PostUsecase) AdminGet(ctx context.Context, id uint) (*entity.Post, error) {
	return u.repo.FindByID(ctx, Filter{}, id)
}

// Create stores a new post. The year defaults to the effective year.
func (u *PostUsecase) Create(ctx context.Context, in Input) (*entity.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	year, err := u.years.ResolveEffectiveYear(ctx, in.Year)
	if err != nil {
		return nil, fmt.Errorf("resolve year: %w", err)
	}
	p := &entity.Post{Year: year}
	assign(p, in)
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post %s/%d: %w", p.Slug, p.Year, err)
	}
	return p, nil
}

// Update replaces the editable fields of post id.
func (u *PostUsecase) Update(ctx context.Context, id uint, in Input) (*entity.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := u.repo.FindByID(ctx, Filter{}, id)
	if err != nil {
		return nil, err
	}
	if in.Year != nil {
		p.Year = *in.Year
	}
	assign(p, in)
	if err := u.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return p, nil
}

// Delete removes post id.
func (u *PostUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

func (u *PostUsecase) publicFilter(ctx context.Context, requested *int) (Filter, error) {
	year, err := u.years.ResolveEffectiveYear(ctx, requested)
	if err != nil {
		return Filter{}, fmt.Errorf("resolve year: %w", err)
	}
	return Filter{Year: &year, PublicOnly: true}, nil
}

func (u *PostUsecase) lookup(ctx context.Context, f Filter, slugOrID string) (*entity.Post, error) {
	p, err := u.repo.FindBySlug(ctx, f, slugOrID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPostNotFound) {
		return nil, err
	}
	id, convErr := strconv.ParseUint(slugOrID, 10, 64)
	if convErr != nil {
		return nil, ErrPostNotFound
	}
	return u.repo.FindByID(ctx, f, uint(id))
}

func assign(p *entity.Post, in Input) {
	p.Title = strings.TrimSpace(in.Title)
	p.Slug = slug.Make(in.Slug)
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	p.Excerpt = in.Excerpt
	p.Content = in.Content
	p.FeaturedImage = in.FeaturedImage
	p.FeaturedImageAlt = in.FeaturedImageAlt
	p.AuthorName = in.AuthorName
	p.CategoryID = in.CategoryID
	p.Status = in.Status
	if p.Status == "" {
		p.Status = entity.StatusDraft
	}
	p.ReadTime = in.ReadTime
	if p.ReadTime == 0 {
		p.ReadTime = entity.DefaultReadTime
	}
	p.IsFeatured = in.IsFeatured
	p.AllowComments = in.AllowComments
	p.Tags = in.Tags
	p.SEO = in.SEO

	if in.IsPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	p.IsPublished = in.IsPublished
}
