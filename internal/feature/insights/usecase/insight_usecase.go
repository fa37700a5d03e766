package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

const (
	featuredSize = 6
	perType      = 3
)

// Filter narrows insight queries. Nil pointers and empty strings mean "any".
type Filter struct {
	Year          *int
	PublishedOnly bool
	CategoryID    *uint
	CategorySlug  string
	InsightType   entity.Type
	IsFeatured    *bool
	IsPremium     *bool
	Search        string
	// WithDetails preloads metrics and key findings.
	WithDetails bool
}

// InsightRepository abstracts the persistence layer for insights.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type InsightRepository interface {
	List(ctx context.Context, f Filter, ordering string, page pagination.Page) ([]entity.Insight, int64, error)
	// ListTop returns up to limit insights; limit <= 0 means no limit.
	ListTop(ctx context.Context, f Filter, ordering string, limit int) ([]entity.Insight, error)
	FindBySlug(ctx context.Context, f Filter, slug string) (*entity.Insight, error)
	FindByID(ctx context.Context, f Filter, id uint) (*entity.Insight, error)
	Increment(ctx context.Context, id uint, column string) (int64, error)
	Create(ctx context.Context, i *entity.Insight) error
	Update(ctx context.Context, i *entity.Insight) error
	Delete(ctx context.Context, id uint) error
}

// YearResolver picks the year a request applies to.
type YearResolver interface {
	ResolveEffectiveYear(ctx context.Context, requested *int) (int, error)
}

// Query is the public list request.
type Query struct {
	Year        *int
	Category    string
	InsightType string
	IsFeatured  *bool
	IsPremium   *bool
	Search      string
	Ordering    string
}

// TypeGroup is the handful of latest insights of one type.
type TypeGroup struct {
	Name     string
	Insights []entity.Insight
}

// Input carries the editable insight fields for the dashboard.
type Input struct {
	Year             *int
	Title            string
	Slug             string
	Description      string
	Content          string
	InsightType      entity.Type
	CategoryID       *uint
	FeaturedImage    string
	FeaturedImageAlt string
	ReportFile       string
	AuthorName       string
	ResearchTeam     string
	DataPoints       string
	Accuracy         string
	SampleSize       string
	RegionsCovered   string
	IsPremium        bool
	IsFeatured       bool
	IsPublished      bool
	SEO              fields.SEO
	Metrics          []entity.Metric
	KeyFindings      []entity.KeyFinding
}

// Validate reports field-level problems with in.
func (in Input) Validate() error {
	problems := apperror.FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		problems.Add("title", "This field is required")
	}
	if in.InsightType != "" && !in.InsightType.Valid() {
		problems.Add("insight_type", "Invalid value provided")
	}
	for _, k := range in.KeyFindings {
		switch k.ImpactLevel {
		case "", entity.ImpactHigh, entity.ImpactMedium, entity.ImpactLow:
		default:
			problems.Add("key_findings", "Must be one of: high medium low")
		}
	}
	return problems.Err()
}

// InsightUsecase provides business logic for market insights.
type InsightUsecase struct {
	repo  InsightRepository
	years YearResolver
}

// NewInsightUsecase creates a new InsightUsecase.
func NewInsightUsecase(repo InsightRepository, years YearResolver) *InsightUsecase {
	return &InsightUsecase{repo: repo, years: years}
}

// List returns published insights of the effective year matching q.
func (u *InsightUsecase) List(ctx context.Context, q Query, page pagination.Page) ([]entity.Insight, int64, error) {
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
	f.InsightType = entity.Type(q.InsightType)
	f.IsFeatured = q.IsFeatured
	f.IsPremium = q.IsPremium
	f.Search = q.Search
	return u.repo.List(ctx, f, q.Ordering, page)
}

// Featured returns the six latest featured insights.
func (u *InsightUsecase) Featured(ctx context.Context, year *int) ([]entity.Insight, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	featured := true
	f.IsFeatured = &featured
	return u.repo.ListTop(ctx, f, "", featuredSize)
}

// ByType groups the three latest insights under each type that has any.
func (u *InsightUsecase) ByType(ctx context.Context, year *int) (map[entity.Type]TypeGroup, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	out := make(map[entity.Type]TypeGroup)
	for _, t := range entity.Types {
		tf := f
		tf.InsightType = t
		items, err := u.repo.ListTop(ctx, tf, "", perType)
		if err != nil {
			return nil, fmt.Errorf("insights of type %s: %w", t, err)
		}
		if len(items) == 0 {
			continue
		}
		out[t] = TypeGroup{Name: t.DisplayName(), Insights: items}
	}
	return out, nil
}

// Get returns one published insight with its metrics and key findings.
func (u *InsightUsecase) Get(ctx context.Context, slugOrID string, year *int) (*entity.Insight, error) {
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return nil, err
	}
	f.WithDetails = true
	return u.lookup(ctx, f, slugOrID)
}

// Increment bumps counter on a published insight and returns the new value.
func (u *InsightUsecase) Increment(ctx context.Context, slugOrID string, counter fields.Counter, year *int) (int64, error) {
	if _, ok := fields.ParseCounter(string(counter),
		fields.CounterViews, fields.CounterLikes, fields.CounterShares, fields.CounterDownloads); !ok {
		return 0, ErrUnknownCounter
	}
	f, err := u.publicFilter(ctx, year)
	if err != nil {
		return 0, err
	}
	i, err := u.lookup(ctx, f, slugOrID)
	if err != nil {
		return 0, err
	}
	return u.repo.Increment(ctx, i.ID, counter.Column())
}

// Search returns up to limit published insights from any year.
func (u *InsightUsecase) Search(ctx context.Context, term string, limit int) ([]entity.Insight, error) {
	return u.repo.ListTop(ctx, Filter{PublishedOnly: true, Search: term}, "", limit)
}

// AdminList returns insights in any publication state. A nil year lists every year.
func (u *InsightUsecase) AdminList(ctx context.Context, year *int, search string, page pagination.Page) ([]entity.Insight, int64, error) {
	return u.repo.List(ctx, Filter{Year: year, Search: search}, "", page)
}

// AdminGet returns an insight by id regardless of publication state.
func (u *InsightUsecase) AdminGet(ctx context.Context, id uint) (*entity.Insight, error) {
	return u.repo.FindByID(ctx, Filter{WithDetails: true}, id)
}

// Create stores a new insight. The year defaults to the effective year.
func (u *InsightUsecase) Create(ctx context.Context, in Input) (*entity.Insight, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	year, err := u.years.ResolveEffectiveYear(ctx, in.Year)
	if err != nil {
		return nil, fmt.Errorf("resolve year: %w", err)
	}
	i := &entity.Insight{Year: year}
	assign(i, in)
	if err := u.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("create insight %s/%d: %w", i.Slug, i.Year, err)
	}
	return i, nil
}

// Update replaces the editable fields of insight id, including its detail rows.
func (u *InsightUsecase) Update(ctx context.Context, id uint, in Input) (*entity.Insight, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	i, err := u.repo.FindByID(ctx, Filter{}, id)
	if err != nil {
		return nil, err
	}
	if in.Year != nil {
		i.Year = *in.Year
	}
	assign(i, in)
	if err := u.repo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("update insight %d: %w", id, err)
	}
	return u.repo.FindByID(ctx, Filter{WithDetails: true}, id)
}

// Delete removes insight id and its detail rows.
func (u *InsightUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

func (u *InsightUsecase) publicFilter(ctx context.Context, requested *int) (Filter, error) {
	year, err := u.years.ResolveEffectiveYear(ctx, requested)
	if err != nil {
		return Filter{}, fmt.Errorf("resolve year: %w", err)
	}
	return Filter{Year: &year, PublishedOnly: true}, nil
}

func (u *InsightUsecase) lookup(ctx context.Context, f Filter, slugOrID string) (*entity.Insight, error) {
	i, err := u.repo.FindBySlug(ctx, f, slugOrID)
	if err == nil {
		return i, nil
	}
	if !errors.Is(err, ErrInsightNotFound) {
		return nil, err
	}
	id, convErr := strconv.ParseUint(slugOrID, 10, 64)
	if convErr != nil {
		return nil, ErrInsightNotFound
	}
	return u.repo.FindByID(ctx, f, uint(id))
}

func assign(i *entity.Insight, in Input) {
	i.Title = strings.TrimSpace(in.Title)
	i.Slug = slug.Make(in.Slug)
	if i.Slug == "" {
		i.Slug = slug.Make(i.Title)
	}
	i.Description = in.Description
	i.Content = in.Content
	i.InsightType = in.InsightType
	if i.InsightType == "" {
		i.InsightType = entity.TypeMarketAnalysis
	}
	i.CategoryID = in.CategoryID
	i.FeaturedImage = in.FeaturedImage
	i.FeaturedImageAlt = in.FeaturedImageAlt
	i.ReportFile = in.ReportFile
	i.AuthorName = in.AuthorName
	i.ResearchTeam = in.ResearchTeam
	i.DataPoints = in.DataPoints
	i.Accuracy = in.Accuracy
	i.SampleSize = in.SampleSize
	i.RegionsCovered = in.RegionsCovered
	i.IsPremium = in.IsPremium
	i.IsFeatured = in.IsFeatured
	i.SEO = in.SEO
	if in.Metrics != nil {
		i.Metrics = in.Metrics
	}
	if in.KeyFindings != nil {
		i.KeyFindings = in.KeyFindings
	}
	for k := range i.KeyFindings {
		if i.KeyFindings[k].ImpactLevel == "" {
			i.KeyFindings[k].ImpactLevel = entity.ImpactMedium
		}
	}

	if in.IsPublished && !i.IsPublished {
		now := time.Now()
		i.PublishedAt = &now
	}
	i.IsPublished = in.IsPublished
}
