package dto

import (
	"time"

	catalogdto "topbrands_backend/internal/feature/catalog/transport/http/dto"
	"topbrands_backend/internal/feature/insights/domain/entity"
	"topbrands_backend/internal/feature/insights/usecase"
	"topbrands_backend/internal/shared/fields"
)

// InsightResponse は一覧用のインサイトDTOです。
type InsightResponse struct {
	ID              uint                              `json:"id"`
	Year            int                               `json:"year"`
	Title           string                            `json:"title"`
	Slug            string                            `json:"slug"`
	Description     string                            `json:"description"`
	InsightType     string                            `json:"insight_type"`
	InsightTypeName string                            `json:"insight_type_display"`
	Category        *catalogdto.ClassificationSummary `json:"category"`
	FeaturedImage   string                            `json:"featured_image"`
	AuthorName      string                            `json:"author_name"`
	IsPremium       bool                              `json:"is_premium"`
	IsFeatured      bool                              `json:"is_featured"`
	IsPublished     bool                              `json:"is_published"`
	ViewsCount      int64                             `json:"views_count"`
	DownloadCount   int64                             `json:"download_count"`
	PublishedAt     *time.Time                        `json:"published_at"`
}

// MetricResponse はレポートの指標です。
type MetricResponse struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

// KeyFindingResponse は主要な発見です。
type KeyFindingResponse struct {
	Finding     string `json:"finding"`
	Description string `json:"description"`
	ImpactLevel string `json:"impact_level"`
}

// InsightDetailResponse は詳細用のインサイトDTOです。
type InsightDetailResponse struct {
	InsightResponse
	Content          string               `json:"content"`
	FeaturedImageAlt string               `json:"featured_image_alt"`
	ReportFile       *string              `json:"report_file"`
	ResearchTeam     string               `json:"research_team"`
	DataPoints       string               `json:"data_points"`
	Accuracy         string               `json:"accuracy"`
	SampleSize       string               `json:"sample_size"`
	RegionsCovered   string               `json:"regions_covered"`
	LikesCount       int64                `json:"likes_count"`
	SharesCount      int64                `json:"shares_count"`
	Metrics          []MetricResponse     `json:"metrics"`
	KeyFindings      []KeyFindingResponse `json:"key_findings"`
	MetaTitle        string               `json:"meta_title"`
	MetaDescription  string               `json:"meta_description"`
	MetaKeywords     string               `json:"meta_keywords"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// TypeGroupResponse は種別ごとのグループです。
type TypeGroupResponse struct {
	Name     string            `json:"name"`
	Insights []InsightResponse `json:"insights"`
}

// IncrementResponse はカウンター更新後の値です。
type IncrementResponse map[string]int64

// MetricRequest は指標の入力です。
type MetricRequest struct {
	Label  string `json:"label" binding:"required,max=100"`
	Value  string `json:"value" binding:"required,max=50"`
	Change string `json:"change" binding:"max=20"`
	Trend  string `json:"trend" binding:"omitempty,oneof=up down stable"`
}

// KeyFindingRequest は主要な発見の入力です。
type KeyFindingRequest struct {
	Finding     string `json:"finding" binding:"required,max=300"`
	Description string `json:"description"`
	ImpactLevel string `json:"impact_level" binding:"omitempty,oneof=high medium low"`
}

// InsightRequest はインサイトの作成・更新リクエストです。
type InsightRequest struct {
	Year             *int                `json:"year"`
	Title            string              `json:"title" binding:"required,max=300"`
	Slug             string              `json:"slug" binding:"max=300"`
	Description      string              `json:"description" binding:"max=500"`
	Content          string              `json:"content"`
	InsightType      string              `json:"insight_type" binding:"omitempty,oneof=market_analysis consumer_behavior brand_performance industry_trends methodology forecast"`
	CategoryID       *uint               `json:"category_id"`
	FeaturedImage    string              `json:"featured_image" binding:"max=255"`
	FeaturedImageAlt string              `json:"featured_image_alt" binding:"max=200"`
	ReportFile       string              `json:"report_file" binding:"max=255"`
	AuthorName       string              `json:"author_name" binding:"max=150"`
	ResearchTeam     string              `json:"research_team" binding:"max=200"`
	DataPoints       string              `json:"data_points" binding:"max=20"`
	Accuracy         string              `json:"accuracy" binding:"max=10"`
	SampleSize       string              `json:"sample_size" binding:"max=20"`
	RegionsCovered   string              `json:"regions_covered" binding:"max=50"`
	IsPremium        bool                `json:"is_premium"`
	IsFeatured       bool                `json:"is_featured"`
	IsPublished      *bool               `json:"is_published"`
	MetaTitle        string              `json:"meta_title" binding:"max=60"`
	MetaDescription  string              `json:"meta_description" binding:"max=160"`
	MetaKeywords     string              `json:"meta_keywords" binding:"max=255"`
	Metrics          []MetricRequest     `json:"metrics" binding:"dive"`
	KeyFindings      []KeyFindingRequest `json:"key_findings" binding:"dive"`
}

// Input はリクエストをusecaseの入力へ変換します。is_published は省略時にtrueです。
func (r InsightRequest) Input() usecase.Input {
	in := usecase.Input{
		Year:             r.Year,
		Title:            r.Title,
		Slug:             r.Slug,
		Description:      r.Description,
		Content:          r.Content,
		InsightType:      entity.Type(r.InsightType),
		CategoryID:       r.CategoryID,
		FeaturedImage:    r.FeaturedImage,
		FeaturedImageAlt: r.FeaturedImageAlt,
		ReportFile:       r.ReportFile,
		AuthorName:       r.AuthorName,
		ResearchTeam:     r.ResearchTeam,
		DataPoints:       r.DataPoints,
		Accuracy:         r.Accuracy,
		SampleSize:       r.SampleSize,
		RegionsCovered:   r.RegionsCovered,
		IsPremium:        r.IsPremium,
		IsFeatured:       r.IsFeatured,
		IsPublished:      r.IsPublished == nil || *r.IsPublished,
		SEO: fields.SEO{
			MetaTitle:       r.MetaTitle,
			MetaDescription: r.MetaDescription,
			MetaKeywords:    r.MetaKeywords,
		},
	}
	if r.Metrics != nil {
		in.Metrics = make([]entity.Metric, 0, len(r.Metrics))
		for i, m := range r.Metrics {
			trend := m.Trend
			if trend == "" {
				trend = "stable"
			}
			in.Metrics = append(in.Metrics, entity.Metric{Label: m.Label, Value: m.Value, Change: m.Change, Trend: trend, SortOrder: i})
		}
	}
	if r.KeyFindings != nil {
		in.KeyFindings = make([]entity.KeyFinding, 0, len(r.KeyFindings))
		for i, k := range r.KeyFindings {
			in.KeyFindings = append(in.KeyFindings, entity.KeyFinding{
				Finding: k.Finding, Description: k.Description, ImpactLevel: k.ImpactLevel, SortOrder: i,
			})
		}
	}
	return in
}

// NewInsightRequest は既存のインサイトから更新リクエストの初期値を作ります。
// 詳細グループは含めないため、省略時は置き換えられません。
func NewInsightRequest(i entity.Insight) InsightRequest {
	year := i.Year
	published := i.IsPublished
	return InsightRequest{
		Year:             &year,
		Title:            i.Title,
		Slug:             i.Slug,
		Description:      i.Description,
		Content:          i.Content,
		InsightType:      string(i.InsightType),
		CategoryID:       i.CategoryID,
		FeaturedImage:    i.FeaturedImage,
		FeaturedImageAlt: i.FeaturedImageAlt,
		ReportFile:       i.ReportFile,
		AuthorName:       i.AuthorName,
		ResearchTeam:     i.ResearchTeam,
		DataPoints:       i.DataPoints,
		Accuracy:         i.Accuracy,
		SampleSize:       i.SampleSize,
		RegionsCovered:   i.RegionsCovered,
		IsPremium:        i.IsPremium,
		IsFeatured:       i.IsFeatured,
		IsPublished:      &published,
		MetaTitle:        i.MetaTitle,
		MetaDescription:  i.MetaDescription,
		MetaKeywords:     i.MetaKeywords,
	}
}

// NewInsightResponse はエンティティを一覧用DTOへ変換します。
func NewInsightResponse(i entity.Insight) InsightResponse {
	return InsightResponse{
		ID:              i.ID,
		Year:            i.Year,
		Title:           i.Title,
		Slug:            i.Slug,
		Description:     i.Description,
		InsightType:     string(i.InsightType),
		InsightTypeName: i.InsightType.DisplayName(),
		Category:        catalogdto.NewClassificationSummary(i.Category),
		FeaturedImage:   i.FeaturedImagePath(),
		AuthorName:      i.AuthorName,
		IsPremium:       i.IsPremium,
		IsFeatured:      i.IsFeatured,
		IsPublished:     i.IsPublished,
		ViewsCount:      i.ViewsCount,
		DownloadCount:   i.DownloadCount,
		PublishedAt:     i.PublishedAt,
	}
}

// NewInsightList はインサイト一覧を変換します。
func NewInsightList(items []entity.Insight) []InsightResponse {
	out := make([]InsightResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewInsightResponse(i))
	}
	return out
}

// NewInsightDetailResponse はエンティティを詳細DTOへ変換します。
func NewInsightDetailResponse(i entity.Insight) InsightDetailResponse {
	out := InsightDetailResponse{
		InsightResponse:  NewInsightResponse(i),
		Content:          i.Content,
		FeaturedImageAlt: i.FeaturedImageAlt,
		ReportFile:       i.ReportFileURL(),
		ResearchTeam:     i.ResearchTeam,
		DataPoints:       i.DataPoints,
		Accuracy:         i.Accuracy,
		SampleSize:       i.SampleSize,
		RegionsCovered:   i.RegionsCovered,
		LikesCount:       i.LikesCount,
		SharesCount:      i.SharesCount,
		Metrics:          make([]MetricResponse, 0, len(i.Metrics)),
		KeyFindings:      make([]KeyFindingResponse, 0, len(i.KeyFindings)),
		MetaTitle:        i.MetaTitle,
		MetaDescription:  i.MetaDescription,
		MetaKeywords:     i.MetaKeywords,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
	for _, m := range i.Metrics {
		out.Metrics = append(out.Metrics, MetricResponse{Label: m.Label, Value: m.Value, Change: m.Change, Trend: m.Trend})
	}
	for _, k := range i.KeyFindings {
		out.KeyFindings = append(out.KeyFindings, KeyFindingResponse{Finding: k.Finding, Description: k.Description, ImpactLevel: k.ImpactLevel})
	}
	return out
}

// NewTypeGroups は種別グループを変換します。
func NewTypeGroups(groups map[entity.Type]usecase.TypeGroup) map[string]TypeGroupResponse {
	out := make(map[string]TypeGroupResponse, len(groups))
	for t, g := range groups {
		out[string(t)] = TypeGroupResponse{Name: g.Name, Insights: NewInsightList(g.Insights)}
	}
	return out
}
