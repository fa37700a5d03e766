// Package entity defines the domain models for the blog feature.
package entity

import (
	"strings"

	catalog "topbrands_backend/internal/feature/catalog/domain/entity"
	"topbrands_backend/internal/shared/fields"
)

// Status is the editorial state of a post. Public listings require
// StatusPublished in addition to the publication flag.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// DefaultReadTime is the read time in minutes used when none is given.
const DefaultReadTime = 5

// Post is a blog article tagged with a ranking year. (Slug, Year) is unique.
type Post struct {
	ID   uint `gorm:"primaryKey"`
	Year int  `gorm:"not null;index;uniqueIndex:idx_post_slug_year"`

	Title   string `gorm:"size:300;not null"`
	Slug    string `gorm:"size:300;not null;uniqueIndex:idx_post_slug_year"`
	Excerpt string `gorm:"size:500"`
	Content string `gorm:"type:text"`

	FeaturedImage    string `gorm:"size:255"`
	FeaturedImageAlt string `gorm:"size:200"`

	AuthorName string                  `gorm:"size:150"`
	CategoryID *uint                   `gorm:"index"`
	Category   *catalog.Classification `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`

	Status        Status `gorm:"size:20;not null;default:'draft';index"`
	ReadTime      int    `gorm:"not null;default:5"`
	IsFeatured    bool   `gorm:"not null;default:false"`
	AllowComments bool   `gorm:"not null;default:false"`
	// Tags is a comma separated list.
	Tags string `gorm:"size:500"`

	fields.Timestamps
	fields.SEO
	fields.Publication
	fields.Engagement
}

// TableName pins the table name.
func (Post) TableName() string { return "blog_posts" }

// FeaturedImagePath returns the stored image reference or one derived from the slug.
func (p *Post) FeaturedImagePath() string {
	return fields.AssetPath(p.FeaturedImage, "blog/images", p.Slug)
}

// TagList splits Tags into trimmed, non-empty names.
func (p *Post) TagList() []string {
	return SplitTags(p.Tags)
}

// SplitTags splits a comma separated tag list into trimmed, non-empty names.
func SplitTags(tags string) []string {
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
