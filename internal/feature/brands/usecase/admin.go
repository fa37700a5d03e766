package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"topbrands_backend/internal/feature/brands/domain/entity"
	"topbrands_backend/internal/shared/apperror"
	"topbrands_backend/internal/shared/fields"
	"topbrands_backend/internal/shared/pagination"
)

const maxRecognition = 100

// Input carries the editable brand fields for the dashboard.
type Input struct {
	Year             *int
	Title            string
	Subtitle         string
	Slug             string
	Description      string
	FullDescription  string
	Logo             string
	Image            string
	BannerImage      string
	CurrentRank      int
	PreviousRank     *int
	BrandValue       string
	MarketCap        string
	Revenue          string
	GrowthRate       string
	FoundedYear      string
	CEO              string
	Employees        string
	HeadquartersID   *uint
	CategoryID       *uint
	IndustryID       *uint
	BrandRecognition int
	CustomerRating   decimal.Decimal
	IsFeatured       bool
	IsNewEntry       bool
	IsPublished      bool
	SEO              fields.SEO
	Social           fields.SocialLinks
	Metrics          []entity.Metric
	Achievements     []entity.Achievement
	Timeline         []entity.TimelineEvent
}

// Validate reports field-level problems with in.
func (in Input) Validate() error {
	problems := apperror.FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		problems.Add("title", "This field is required")
	}
	if in.CurrentRank < entity.MinRank || in.CurrentRank > entity.MaxRank {
		problems.Add("current_rank", fmt.Sprintf("Rank must be between %d and %d", entity.MinRank, entity.MaxRank))
	}
	if in.PreviousRank != nil && (*in.PreviousRank < entity.MinRank || *in.PreviousRank > entity.MaxRank) {
		problems.Add("previous_rank", fmt.Sprintf("Rank must be between %d and %d", entity.MinRank, entity.MaxRank))
	}
	if in.CustomerRating.IsNegative() || in.CustomerRating.GreaterThan(maxRating) {
		problems.Add("customer_rating", "Rating must be between 0.00 and 5.00")
	}
	if in.BrandRecognition < 0 || in.BrandRecognition > maxRecognition {
		problems.Add("brand_recognition", "Recognition must be between 0 and 100")
	}
	return problems.Err()
}

// AdminList returns brands in any publication state. A nil year lists every year.
func (u *BrandUsecase) AdminList(ctx context.Context, year *int, search string, page pagination.Page) ([]entity.Brand, int64, error) {
	return u.repo.List(ctx, Filter{Year: year, Search: search}, "", page)
}

// AdminGet returns a brand by id regardless of publication state.
func (u *BrandUsecase) AdminGet(ctx context.Context, id uint) (*entity.Brand, error) {
	return u.repo.FindByID(ctx, Filter{WithDetails: true}, id)
}

// Create stores a new brand. The year defaults to the effective year and the
// slug to one derived from the title.
func (u *BrandUsecase) Create(ctx context.Context, in Input) (*entity.Brand, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	year, err := u.years.ResolveEffectiveYear(ctx, in.Year)
	if err != nil {
		return nil, fmt.Errorf("resolve year: %w", err)
	}

	b := &entity.Brand{Year: year}
	assign(b, in)
	if err := u.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create brand %s/%d: %w", b.Slug, b.Year, err)
	}
	return b, nil
}

// Update saves the editable fields of brand id. Detail groups left nil in in
// keep their rows. The result carries the stored detail rows.
func (u *BrandUsecase) Update(ctx context.Context, id uint, in Input) (*entity.Brand, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := u.repo.FindByID(ctx, Filter{}, id)
	if err != nil {
		return nil, err
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	assign(b, in)
	if err := u.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update brand %d: %w", id, err)
	}
	return u.repo.FindByID(ctx, Filter{WithDetails: true}, id)
}

// Delete removes brand id and its detail rows.
func (u *BrandUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

func assign(b *entity.Brand, in Input) {
	b.Title = strings.TrimSpace(in.Title)
	b.Slug = slug.Make(in.Slug)
	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}
	b.Subtitle = in.Subtitle
	b.Description = in.Description
	b.FullDescription = in.FullDescription
	b.Logo = in.Logo
	b.Image = in.Image
	b.BannerImage = in.BannerImage
	b.CurrentRank = in.CurrentRank
	b.PreviousRank = in.PreviousRank
	b.BrandValue = in.BrandValue
	b.MarketCap = in.MarketCap
	b.Revenue = in.Revenue
	b.GrowthRate = in.GrowthRate
	b.SyncSortKeys()
	b.FoundedYear = in.FoundedYear
	b.CEO = in.CEO
	b.Employees = in.Employees
	b.HeadquartersID = in.HeadquartersID
	b.CategoryID = in.CategoryID
	b.IndustryID = in.IndustryID
	b.BrandRecognition = in.BrandRecognition
	b.CustomerRating = in.CustomerRating.Round(2)
	b.IsFeatured = in.IsFeatured
	b.IsNewEntry = in.IsNewEntry
	b.SEO = in.SEO
	b.SocialLinks = in.Social
	if in.Metrics != nil {
		b.Metrics = in.Metrics
	}
	if in.Achievements != nil {
		b.Achievements = in.Achievements
	}
	if in.Timeline != nil {
		b.Timeline = in.Timeline
	}

	if in.IsPublished && !b.IsPublished {
		now := time.Now()
		b.PublishedAt = &now
	}
	b.IsPublished = in.IsPublished
}
