package entity

import "topbrands_backend/internal/shared/fields"

// MaxTagLength bounds both the tag name and its slug.
const MaxTagLength = 50

// Tag is a blog tag. Tags are registered from the names posts carry in Tags.
type Tag struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null;uniqueIndex"`
	Slug        string `gorm:"size:50;not null;uniqueIndex"`
	Description string `gorm:"type:text"`

	fields.Timestamps
}

// TableName pins the table name.
func (Tag) TableName() string { return "blog_tags" }
