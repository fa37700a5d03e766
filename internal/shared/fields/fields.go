// Package fields holds the column groups shared by content entities.
// Embed them anonymously so gorm flattens their columns into the owning table.
package fields

import (
	"fmt"
	"time"
)

// Timestamps are maintained by gorm.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SEO metadata.
type SEO struct {
	MetaTitle       string `gorm:"size:60"`
	MetaDescription string `gorm:"size:160"`
	MetaKeywords    string `gorm:"size:255"`
}

// Publication controls public visibility.
type Publication struct {
	IsPublished bool `gorm:"not null;default:false;index"`
	PublishedAt *time.Time
}

// Engagement counters. They are only ever changed through atomic increments.
type Engagement struct {
	ViewsCount  int64 `gorm:"not null;default:0"`
	LikesCount  int64 `gorm:"not null;default:0"`
	SharesCount int64 `gorm:"not null;default:0"`
}

// SocialLinks for brand profiles.
type SocialLinks struct {
	Website   string `gorm:"size:255"`
	Twitter   string `gorm:"size:255"`
	Facebook  string `gorm:"size:255"`
	Instagram string `gorm:"size:255"`
	LinkedIn  string `gorm:"column:linkedin;size:255"`
	Youtube   string `gorm:"size:255"`
}

// Counter names an engagement counter exposed over the API.
type Counter string

const (
	CounterViews     Counter = "views"
	CounterLikes     Counter = "likes"
	CounterShares    Counter = "shares"
	CounterDownloads Counter = "downloads"
)

// Column is the database column backing c. It doubles as the JSON key the
// new value is returned under.
func (c Counter) Column() string {
	if c == CounterDownloads {
		return "download_count"
	}
	return string(c) + "_count"
}

// ParseCounter accepts only the names in allowed.
func ParseCounter(name string, allowed ...Counter) (Counter, bool) {
	for _, c := range allowed {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// AssetPath returns ref when set, otherwise a path derived from the owner's slug.
func AssetPath(ref, kind, slug string) string {
	if ref != "" {
		return ref
	}
	return fmt.Sprintf("/media/%s/%s.png", kind, slug)
}
