// Package entity defines the classification records that brands, posts and insights refer to.
package entity

import "topbrands_backend/internal/shared/fields"

// Kind distinguishes the classification vocabularies stored in one table.
type Kind string

const (
	KindCategory     Kind = "category"
	KindIndustry     Kind = "industry"
	KindLocation     Kind = "location"
	KindBlogCategory Kind = "blog_category"
)

// Kinds lists every valid Kind.
var Kinds = []Kind{KindCategory, KindIndustry, KindLocation, KindBlogCategory}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// DefaultColor is the brand green used when no color is given.
const DefaultColor = "#007751"

// Classification is a category, industry, location or blog category.
// Name and slug are unique within a kind.
type Classification struct {
	ID          uint   `gorm:"primaryKey"`
	Kind        Kind   `gorm:"size:20;not null;uniqueIndex:idx_classification_kind_name;uniqueIndex:idx_classification_kind_slug"`
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_classification_kind_name"`
	Slug        string `gorm:"size:100;not null;uniqueIndex:idx_classification_kind_slug"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"size:7;not null;default:'#007751'"`
	Icon        string `gorm:"size:50"`
	IsActive    bool   `gorm:"not null;default:false"`

	// Location only.
	Country string `gorm:"size:100"`
	State   string `gorm:"size:100"`
	City    string `gorm:"size:100"`

	fields.Timestamps
}

// TableName pins the table name.
func (Classification) TableName() string { return "classifications" }
