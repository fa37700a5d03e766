// Package entity defines the domain models for the insights feature.
package entity

import (
	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/shared/fields"
)

// Type classifies an insight report.
type Type string

const (
	TypeMarketAnalysis   Type = "market_analysis"
	TypeConsumerBehavior Type = "consumer_behavior"
	TypeBrandPerformance Type = "brand_performance"
	TypeIndustryTrends   Type = "industry_trends"
	TypeMethodology      Type = "methodology"
	TypeForecast         Type = "forecast"
)

// Types lists every Type in display order.
var Types = []Type{
	TypeMarketAnalysis,
	TypeConsumerBehavior,
	TypeBrandPerformance,
	TypeIndustryTrends,
	TypeMethodology,
	TypeForecast,
}

var typeNames = map[Type]string{
	TypeMarketAnalysis:   "Market Analysis",
	TypeConsumerBehavior: "Consumer Behavior",
	TypeBrandPerformance: "Brand Performance",
	TypeIndustryTrends:   "Industry Trends",
	TypeMethodology:      "Methodology",
	TypeForecast:         "Forecast",
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// DisplayName is the human readable name.
func (t Type) DisplayName() string { return typeNames[t] }

// Impact levels for key findings.
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Insight is a market research report tagged with a ranking year. (Slug, Year) is unique.
type Insight struct {
	ID   uint `gorm:"primaryKey"`
	Year int  `gorm:"not null;index;uniqueIndex:idx_insight_slug_year"`

	Title       string `gorm:"size:300;not null"`
	Slug        string `gorm:"size:300;not null;uniqueIndex:idx_insight_slug_year"`
	Description string `gorm:"size:500"`
	Content     string `gorm:"type:text"`

	InsightType Type                    `gorm:"size:30;not null;default:'market_analysis';index"`
	CategoryID  *uint                   `gorm:"index"`
	Category    *catalog.Classification `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`

	FeaturedImage    string `gorm:"size:255"`
	FeaturedImageAlt string `gorm:"size:200"`
	ReportFile       string `gorm:"size:255"`

	AuthorName     string `gorm:"size:150"`
	ResearchTeam   string `gorm:"size:200"`
	DataPoints     string `gorm:"size:20"`
	Accuracy       string `gorm:"size:10"`
	SampleSize     string `gorm:"size:20"`
	RegionsCovered string `gorm:"size:50"`

	IsPremium     bool  `gorm:"not null;default:false"`
	IsFeatured    bool  `gorm:"not null;default:false"`
	DownloadCount int64 `gorm:"not null;default:0"`

	Metrics     []Metric     `gorm:"constraint:OnDelete:CASCADE"`
	KeyFindings []KeyFinding `gorm:"constraint:OnDelete:CASCADE"`

	fields.Timestamps
	fields.SEO
	fields.Publication
	fields.Engagement
}

// FeaturedImagePath returns the stored image reference or one derived from the slug.
func (i *Insight) FeaturedImagePath() string {
	return fields.AssetPath(i.FeaturedImage, "insights/images", i.Slug)
}

// ReportFileURL returns the report reference, or nil when there is none.
func (i *Insight) ReportFileURL() *string {
	if i.ReportFile == "" {
		return nil
	}
	return &i.ReportFile
}

// Metric is a headline figure of a report.
type Metric struct {
	ID        uint   `gorm:"primaryKey"`
	InsightID uint   `gorm:"not null;index"`
	Label     string `gorm:"size:100;not null"`
	Value     string `gorm:"size:50;not null"`
	Change    string `gorm:"size:20"`
	Trend     string `gorm:"size:10;not null;default:'stable'"`
	SortOrder int    `gorm:"not null;default:0"`
	fields.Timestamps
}

func (Metric) TableName() string { return "insight_metrics" }

// KeyFinding is one conclusion of a report.
type KeyFinding struct {
	ID          uint   `gorm:"primaryKey"`
	InsightID   uint   `gorm:"not null;index"`
	Finding     string `gorm:"size:300;not null"`
	Description string `gorm:"type:text"`
	ImpactLevel string `gorm:"size:10;not null;default:'medium'"`
	SortOrder   int    `gorm:"not null;default:0"`
	fields.Timestamps
}

func (KeyFinding) TableName() string { return "insight_key_findings" }
