package dto

import (
	"github.com/shopspring/decimal"

	"topbrands_backend/internal/feature/brands/domain/entity"
	"topbrands_backend/internal/feature/brands/usecase"
	"topbrands_backend/internal/shared/fields"
)

// MetricRequest は指標行の入力です。
type MetricRequest struct {
	Label  string `json:"label" binding:"required,max=100"`
	Value  string `json:"value" binding:"required,max=50"`
	Change string `json:"change" binding:"max=20"`
	Trend  string `json:"trend" binding:"omitempty,oneof=up down stable"`
}

// AchievementRequest は受賞歴の入力です。
type AchievementRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	Year         string `json:"year" binding:"max=4"`
	Organization string `json:"organization" binding:"max=200"`
}

// TimelineRequest は沿革の入力です。
type TimelineRequest struct {
	Year        string `json:"year" binding:"required,max=4"`
	Event       string `json:"event" binding:"required,max=300"`
	Description string `json:"description"`
}

// BrandRequest はダッシュボードでのブランド作成・更新リクエストです。
// 値域の検証はusecase.Input.Validateが行います。
type BrandRequest struct {
	Year             *int                 `json:"year"`
	Title            string               `json:"title" binding:"required,max=200"`
	Subtitle         string               `json:"subtitle" binding:"max=300"`
	Slug             string               `json:"slug" binding:"max=200"`
	Description      string               `json:"description"`
	FullDescription  string               `json:"full_description"`
	Logo             string               `json:"logo" binding:"max=255"`
	Image            string               `json:"image" binding:"max=255"`
	BannerImage      string               `json:"banner_image" binding:"max=255"`
	CurrentRank      int                  `json:"current_rank"`
	PreviousRank     *int                 `json:"previous_rank"`
	BrandValue       string               `json:"brand_value" binding:"max=20"`
	MarketCap        string               `json:"market_cap" binding:"max=20"`
	Revenue          string               `json:"revenue" binding:"max=20"`
	GrowthRate       string               `json:"growth_rate" binding:"max=10"`
	FoundedYear      string               `json:"founded_year" binding:"max=4"`
	CEO              string               `json:"ceo" binding:"max=200"`
	Employees        string               `json:"employees" binding:"max=50"`
	HeadquartersID   *uint                `json:"headquarters_id"`
	CategoryID       *uint                `json:"category_id"`
	IndustryID       *uint                `json:"industry_id"`
	BrandRecognition int                  `json:"brand_recognition"`
	CustomerRating   decimal.Decimal      `json:"customer_rating"`
	IsFeatured       bool                 `json:"is_featured"`
	IsNewEntry       bool                 `json:"is_new_entry"`
	IsPublished      *bool                `json:"is_published"`
	MetaTitle        string               `json:"meta_title" binding:"max=60"`
	MetaDescription  string               `json:"meta_description" binding:"max=160"`
	MetaKeywords     string               `json:"meta_keywords" binding:"max=255"`
	SocialMedia      SocialMedia          `json:"social_media"`
	Metrics          []MetricRequest      `json:"metrics" binding:"dive"`
	Achievements     []AchievementRequest `json:"achievements" binding:"dive"`
	Timeline         []TimelineRequest    `json:"timeline" binding:"dive"`
}

// Input はリクエストをusecaseの入力へ変換します。is_publishedの省略時は公開扱いです。
func (r BrandRequest) Input() usecase.Input {
	in := usecase.Input{
		Year:             r.Year,
		Title:            r.Title,
		Subtitle:         r.Subtitle,
		Slug:             r.Slug,
		Description:      r.Description,
		FullDescription:  r.FullDescription,
		Logo:             r.Logo,
		Image:            r.Image,
		BannerImage:      r.BannerImage,
		CurrentRank:      r.CurrentRank,
		PreviousRank:     r.PreviousRank,
		BrandValue:       r.BrandValue,
		MarketCap:        r.MarketCap,
		Revenue:          r.Revenue,
		GrowthRate:       r.GrowthRate,
		FoundedYear:      r.FoundedYear,
		CEO:              r.CEO,
		Employees:        r.Employees,
		HeadquartersID:   r.HeadquartersID,
		CategoryID:       r.CategoryID,
		IndustryID:       r.IndustryID,
		BrandRecognition: r.BrandRecognition,
		CustomerRating:   r.CustomerRating,
		IsFeatured:       r.IsFeatured,
		IsNewEntry:       r.IsNewEntry,
		IsPublished:      r.IsPublished == nil || *r.IsPublished,
		SEO: fields.SEO{
			MetaTitle:       r.MetaTitle,
			MetaDescription: r.MetaDescription,
			MetaKeywords:    r.MetaKeywords,
		},
		Social: fields.SocialLinks{
			Website:   r.SocialMedia.Website,
			Twitter:   r.SocialMedia.Twitter,
			Facebook:  r.SocialMedia.Facebook,
			Instagram: r.SocialMedia.Instagram,
			LinkedIn:  r.SocialMedia.LinkedIn,
			Youtube:   r.SocialMedia.Youtube,
		},
	}
	// 省略された詳細グループはnilのまま渡し、既存の行を残します。
	if r.Metrics != nil {
		in.Metrics = make([]entity.Metric, 0, len(r.Metrics))
		for i, m := range r.Metrics {
			trend := m.Trend
			if trend == "" {
				trend = entity.DirectionStable
			}
			in.Metrics = append(in.Metrics, entity.Metric{Label: m.Label, Value: m.Value, Change: m.Change, Trend: trend, SortOrder: i})
		}
	}
	if r.Achievements != nil {
		in.Achievements = make([]entity.Achievement, 0, len(r.Achievements))
		for i, a := range r.Achievements {
			in.Achievements = append(in.Achievements, entity.Achievement{Title: a.Title, Description: a.Description, Year: a.Year, Organization: a.Organization, SortOrder: i})
		}
	}
	if r.Timeline != nil {
		in.Timeline = make([]entity.TimelineEvent, 0, len(r.Timeline))
		for i, e := range r.Timeline {
			in.Timeline = append(in.Timeline, entity.TimelineEvent{Year: e.Year, Event: e.Event, Description: e.Description, SortOrder: i})
		}
	}
	return in
}

// NewBrandRequest は既存のブランドから更新リクエストの初期値を作ります。
// JSONをこの値へバインドすると、リクエストに含まれないフィールドは現在の値のまま残ります。
// 詳細グループは含めないため、省略時は置き換えられません。
func NewBrandRequest(b entity.Brand) BrandRequest {
	year := b.Year
	published := b.IsPublished
	return BrandRequest{
		Year:             &year,
		Title:            b.Title,
		Subtitle:         b.Subtitle,
		Slug:             b.Slug,
		Description:      b.Description,
		FullDescription:  b.FullDescription,
		Logo:             b.Logo,
		Image:            b.Image,
		BannerImage:      b.BannerImage,
		CurrentRank:      b.CurrentRank,
		PreviousRank:     b.PreviousRank,
		BrandValue:       b.BrandValue,
		MarketCap:        b.MarketCap,
		Revenue:          b.Revenue,
		GrowthRate:       b.GrowthRate,
		FoundedYear:      b.FoundedYear,
		CEO:              b.CEO,
		Employees:        b.Employees,
		HeadquartersID:   b.HeadquartersID,
		CategoryID:       b.CategoryID,
		IndustryID:       b.IndustryID,
		BrandRecognition: b.BrandRecognition,
		CustomerRating:   b.CustomerRating,
		IsFeatured:       b.IsFeatured,
		IsNewEntry:       b.IsNewEntry,
		IsPublished:      &published,
		MetaTitle:        b.MetaTitle,
		MetaDescription:  b.MetaDescription,
		MetaKeywords:     b.MetaKeywords,
		SocialMedia: SocialMedia{
			Website:   b.Website,
			Twitter:   b.Twitter,
			Facebook:  b.Facebook,
			Instagram: b.Instagram,
			LinkedIn:  b.LinkedIn,
			Youtube:   b.Youtube,
		},
	}
}
