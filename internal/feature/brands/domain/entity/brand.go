// Package entity defines the domain models for the brands feature.
package entity

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/shared/fields"
)

// Rank bounds for a yearly top-50 ranking.
const (
	MinRank = 1
	MaxRank = 50
)

// Rank change directions.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// Brand is one ranked brand in one ranking year. (Slug, Year) is unique.
type Brand struct {
	ID   uint `gorm:"primaryKey"`
	Year int  `gorm:"not null;index;uniqueIndex:idx_brand_slug_year"`

	Title           string `gorm:"size:200;not null"`
	Subtitle        string `gorm:"size:300"`
	Slug            string `gorm:"size:200;not null;uniqueIndex:idx_brand_slug_year"`
	Description     string `gorm:"type:text"`
	FullDescription string `gorm:"type:text"`

	// Explicit asset references; empty means derive from the slug.
	Logo        string `gorm:"size:255"`
	Image       string `gorm:"size:255"`
	BannerImage string `gorm:"size:255"`

	CurrentRank  int `gorm:"not null;index"`
	PreviousRank *int

	BrandValue string `gorm:"size:20"`
	MarketCap  string `gorm:"size:20"`
	Revenue    string `gorm:"size:20"`
	GrowthRate string `gorm:"size:10"`

	// Numeric sort keys for BrandValue and GrowthRate, set by SyncSortKeys.
	BrandValueAmount decimal.Decimal `gorm:"type:decimal(24,2);not null;default:0;index"`
	GrowthRateAmount decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0"`

	FoundedYear string `gorm:"size:4"`
	CEO         string `gorm:"size:200"`
	Employees   string `gorm:"size:50"`

	HeadquartersID *uint
	Headquarters   *catalog.Classification `gorm:"foreignKey:HeadquartersID;constraint:OnDelete:SET NULL"`
	CategoryID     *uint                   `gorm:"index"`
	Category       *catalog.Classification `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	IndustryID     *uint                   `gorm:"index"`
	Industry       *catalog.Classification `gorm:"foreignKey:IndustryID;constraint:OnDelete:SET NULL"`

	BrandRecognition int             `gorm:"not null;default:0"`
	CustomerRating   decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`

	IsFeatured bool `gorm:"not null;default:false"`
	IsNewEntry bool `gorm:"not null;default:false"`

	Metrics      []Metric        `gorm:"constraint:OnDelete:CASCADE"`
	Achievements []Achievement   `gorm:"constraint:OnDelete:CASCADE"`
	Timeline     []TimelineEvent `gorm:"constraint:OnDelete:CASCADE"`

	fields.Timestamps
	fields.SEO
	fields.Publication
	fields.SocialLinks
	fields.Engagement
}

// RankChange is PreviousRank - CurrentRank, or 0 without a previous rank.
// Positive means the brand moved up.
func (b *Brand) RankChange() int {
	if b.PreviousRank == nil {
		return 0
	}
	return *b.PreviousRank - b.CurrentRank
}

// RankChangeDirection classifies RankChange.
func (b *Brand) RankChangeDirection() string {
	switch change := b.RankChange(); {
	case change > 0:
		return DirectionUp
	case change < 0:
		return DirectionDown
	default:
		return DirectionStable
	}
}

// LogoPath returns the stored logo reference or one derived from the slug.
func (b *Brand) LogoPath() string {
	return fields.AssetPath(b.Logo, "brands/logos", b.Slug)
}

// ImagePath returns the stored image reference or one derived from the slug.
func (b *Brand) ImagePath() string {
	return fields.AssetPath(b.Image, "brands/images", b.Slug)
}

// Metric is a headline figure shown on a brand profile.
type Metric struct {
	ID        uint   `gorm:"primaryKey"`
	BrandID   uint   `gorm:"not null;index"`
	Label     string `gorm:"size:100;not null"`
	Value     string `gorm:"size:50;not null"`
	Change    string `gorm:"size:20"`
	Trend     string `gorm:"size:10;not null;default:'stable'"`
	SortOrder int    `gorm:"not null;default:0"`
	fields.Timestamps
}

func (Metric) TableName() string { return "brand_metrics" }

// Achievement is an award or recognition.
type Achievement struct {
	ID           uint   `gorm:"primaryKey"`
	BrandID      uint   `gorm:"not null;index"`
	Title        string `gorm:"size:200;not null"`
	Description  string `gorm:"type:text"`
	Year         string `gorm:"size:4"`
	Organization string `gorm:"size:200"`
	SortOrder    int    `gorm:"not null;default:0"`
	fields.Timestamps
}

func (Achievement) TableName() string { return "brand_achievements" }

// TimelineEvent is a milestone in a brand's history.
type TimelineEvent struct {
	ID          uint   `gorm:"primaryKey"`
	BrandID     uint   `gorm:"not null;index"`
	Year        string `gorm:"size:4;not null"`
	Event       string `gorm:"size:300;not null"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"not null;default:0"`
	fields.Timestamps
}

func (TimelineEvent) TableName() string { return "brand_timeline" }

// magnitudes maps the suffixes used in display amounts to powers of ten.
var magnitudes = map[rune]int32{'K': 3, 'M': 6, 'B': 9, 'T': 12}

// ParseAmount reads a display amount such as "₦4.2T", "1,200B" or "+12.5%".
// Currency signs, separators and percent signs are ignored. Unparseable input is zero.
func ParseAmount(s string) decimal.Decimal {
	var num strings.Builder
	var exp int32
	for _, r := range strings.ToUpper(s) {
		switch {
		case unicode.IsDigit(r) || r == '.':
			num.WriteRune(r)
		case r == '-' && num.Len() == 0:
			num.WriteRune(r)
		case num.Len() > 0 && exp == 0:
			exp = magnitudes[r]
		}
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(exp)
}

// SyncSortKeys derives the numeric sort keys from the display amounts.
func (b *Brand) SyncSortKeys() {
	b.BrandValueAmount = ParseAmount(b.BrandValue)
	b.GrowthRateAmount = ParseAmount(b.GrowthRate)
}
