// Package usecase implements search across brands, blog posts and insights.
package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	blog "topbrands_backend/internal/feature/blog/domain/entity"
	brands "topbrands_backend/internal/feature/brands/domain/entity"
	insights "topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/shared/apperror"
)

// PerKind is how many matches of each kind a search returns.
const PerKind = 5

// ErrEmptyQuery is returned when the search term is blank.
var ErrEmptyQuery = apperror.BadRequest(`Query parameter "q" is required`)

// BrandSearcher finds published brands in any year.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BrandSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]brands.Brand, error)
}

// PostSearcher finds public blog posts in any year.
type PostSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]blog.Post, error)
}

// InsightSearcher finds published insights in any year.
type InsightSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]insights.Insight, error)
}

// Result holds the matches of one search.
type Result struct {
	Query     string
	Brands    []brands.Brand
	BlogPosts []blog.Post
	Insights  []insights.Insight
}

// Total is the number of matches across all kinds.
func (r Result) Total() int {
	return len(r.Brands) + len(r.BlogPosts) + len(r.Insights)
}

// SearchUsecase runs one term against every content kind.
type SearchUsecase struct {
	brands   BrandSearcher
	posts    PostSearcher
	insights InsightSearcher
}

// NewSearchUsecase creates a new SearchUsecase.
func NewSearchUsecase(b BrandSearcher, p PostSearcher, i InsightSearcher) *SearchUsecase {
	return &SearchUsecase{brands: b, posts: p, insights: i}
}

// Search returns up to PerKind published matches of each kind. The three
// lookups run concurrently and the first failure cancels the others.
func (u *SearchUsecase) Search(ctx context.Context, q string) (*Result, error) {
	term := strings.TrimSpace(q)
	if term == "" {
		return nil, ErrEmptyQuery
	}

	res := &Result{Query: q}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Brands, err = u.brands.Search(ctx, term, PerKind)
		return err
	})
	g.Go(func() error {
		var err error
		res.BlogPosts, err = u.posts.Search(ctx, term, PerKind)
		return err
	})
	g.Go(func() error {
		var err error
		res.Insights, err = u.insights.Search(ctx, term, PerKind)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
