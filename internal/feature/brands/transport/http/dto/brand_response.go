package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"topbrands_backend/internal/feature/brands/domain/entity"
	catalogdto "topbrands_backend/internal/feature/catalog/transport/http/dto"
)

// BrandResponse は一覧用のブランドDTOです。
type BrandResponse struct {
	ID                  uint                              `json:"id"`
	Year                int                               `json:"year"`
	Title               string                            `json:"title"`
	Subtitle            string                            `json:"subtitle"`
	Slug                string                            `json:"slug"`
	Description         string                            `json:"description"`
	Logo                string                            `json:"logo"`
	Image               string                            `json:"image"`
	CurrentRank         int                               `json:"current_rank"`
	PreviousRank        *int                              `json:"previous_rank"`
	RankChange          int                               `json:"rank_change"`
	RankChangeDirection string                            `json:"rank_change_direction"`
	BrandValue          string                            `json:"brand_value"`
	GrowthRate          string                            `json:"growth_rate"`
	Category            *catalogdto.ClassificationSummary `json:"category"`
	Industry            *catalogdto.ClassificationSummary `json:"industry"`
	IsFeatured          bool                              `json:"is_featured"`
	IsNewEntry          bool                              `json:"is_new_entry"`
	IsPublished         bool                              `json:"is_published"`
	ViewsCount          int64                             `json:"views_count"`
	LikesCount          int64                             `json:"likes_count"`
}

// SocialMedia はブランドのSNSリンクです。
type SocialMedia struct {
	Website   string `json:"website"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Youtube   string `json:"youtube"`
}

// MetricResponse は指標行です。
type MetricResponse struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

// AchievementResponse は受賞歴です。
type AchievementResponse struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Year         string `json:"year"`
	Organization string `json:"organization"`
}

// TimelineResponse は沿革です。
type TimelineResponse struct {
	Year        string `json:"year"`
	Event       string `json:"event"`
	Description string `json:"description"`
}

// BrandDetailResponse は詳細用のブランドDTOです。
type BrandDetailResponse struct {
	BrandResponse
	FullDescription  string                            `json:"full_description"`
	BannerImage      string                            `json:"banner_image"`
	MarketCap        string                            `json:"market_cap"`
	Revenue          string                            `json:"revenue"`
	FoundedYear      string                            `json:"founded_year"`
	CEO              string                            `json:"ceo"`
	Employees        string                            `json:"employees"`
	Headquarters     *catalogdto.ClassificationSummary `json:"headquarters"`
	BrandRecognition int                               `json:"brand_recognition"`
	CustomerRating   decimal.Decimal                   `json:"customer_rating"`
	SharesCount      int64                             `json:"shares_count"`
	SocialMedia      SocialMedia                       `json:"social_media"`
	Metrics          []MetricResponse                  `json:"metrics"`
	Achievements     []AchievementResponse             `json:"achievements"`
	Timeline         []TimelineResponse                `json:"timeline"`
	MetaTitle        string                            `json:"meta_title"`
	MetaDescription  string                            `json:"meta_description"`
	MetaKeywords     string                            `json:"meta_keywords"`
	PublishedAt      *time.Time                        `json:"published_at"`
	CreatedAt        time.Time                         `json:"created_at"`
	UpdatedAt        time.Time                         `json:"updated_at"`
}

// IncrementResponse はカウンター更新後の値を返します。キーは列名です。
type IncrementResponse map[string]int64

// NewBrandResponse はエンティティを一覧DTOへ変換します。
func NewBrandResponse(b entity.Brand) BrandResponse {
	return BrandResponse{
		ID:                  b.ID,
		Year:                b.Year,
		Title:               b.Title,
		Subtitle:            b.Subtitle,
		Slug:                b.Slug,
		Description:         b.Description,
		Logo:                b.LogoPath(),
		Image:               b.ImagePath(),
		CurrentRank:         b.CurrentRank,
		PreviousRank:        b.PreviousRank,
		RankChange:          b.RankChange(),
		RankChangeDirection: b.RankChangeDirection(),
		BrandValue:          b.BrandValue,
		GrowthRate:          b.GrowthRate,
		Category:            catalogdto.NewClassificationSummary(b.Category),
		Industry:            catalogdto.NewClassificationSummary(b.Industry),
		IsFeatured:          b.IsFeatured,
		IsNewEntry:          b.IsNewEntry,
		IsPublished:         b.IsPublished,
		ViewsCount:          b.ViewsCount,
		LikesCount:          b.LikesCount,
	}
}

// NewBrandList は一覧を変換します。
func NewBrandList(bs []entity.Brand) []BrandResponse {
	out := make([]BrandResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, NewBrandResponse(b))
	}
	return out
}

// NewBrandDetailResponse はエンティティを詳細DTOへ変換します。
func NewBrandDetailResponse(b entity.Brand) BrandDetailResponse {
	out := BrandDetailResponse{
		BrandResponse:    NewBrandResponse(b),
		FullDescription:  b.FullDescription,
		BannerImage:      b.BannerImage,
		MarketCap:        b.MarketCap,
		Revenue:          b.Revenue,
		FoundedYear:      b.FoundedYear,
		CEO:              b.CEO,
		Employees:        b.Employees,
		Headquarters:     catalogdto.NewClassificationSummary(b.Headquarters),
		BrandRecognition: b.BrandRecognition,
		CustomerRating:   b.CustomerRating,
		SharesCount:      b.SharesCount,
		SocialMedia: SocialMedia{
			Website:   b.Website,
			Twitter:   b.Twitter,
			Facebook:  b.Facebook,
			Instagram: b.Instagram,
			LinkedIn:  b.LinkedIn,
			Youtube:   b.Youtube,
		},
		Metrics:         make([]MetricResponse, 0, len(b.Metrics)),
		Achievements:    make([]AchievementResponse, 0, len(b.Achievements)),
		Timeline:        make([]TimelineResponse, 0, len(b.Timeline)),
		MetaTitle:       b.MetaTitle,
		MetaDescription: b.MetaDescription,
		MetaKeywords:    b.MetaKeywords,
		PublishedAt:     b.PublishedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	for _, m := range b.Metrics {
		out.Metrics = append(out.Metrics, MetricResponse{Label: m.Label, Value: m.Value, Change: m.Change, Trend: m.Trend})
	}
	for _, a := range b.Achievements {
		out.Achievements = append(out.Achievements, AchievementResponse{Title: a.Title, Description: a.Description, Year: a.Year, Organization: a.Organization})
	}
	for _, e := range b.Timeline {
		out.Timeline = append(out.Timeline, TimelineResponse{Year: e.Year, Event: e.Event, Description: e.Description})
	}
	return out
}
