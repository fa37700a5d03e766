// Package entity defines the ranking year registry models.
package entity

import (
	"fmt"
	"time"

	"topbrands_backend/internal/shared/fields"
)

// Allowed ranking years.
const (
	MinYear = 2020
	MaxYear = 2050
)

// DefaultTotalBrands is the ranking size of a new year.
const DefaultTotalBrands = 50

// ValidYear reports whether y is inside the allowed range.
func ValidYear(y int) bool { return y >= MinYear && y <= MaxYear }

// DefaultTitle is the title given to a year created without one.
func DefaultTitle(y int) string {
	return fmt.Sprintf("Top 50 Most Valuable Brands in Nigeria %d", y)
}

// YearRecord is one ranking year. At most one record is active.
type YearRecord struct {
	ID          uint   `gorm:"primaryKey"`
	Year        int    `gorm:"not null;uniqueIndex"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	IsActive    bool `gorm:"not null;default:false;index"`
	IsPublished bool `gorm:"not null;default:false"`
	IsComplete  bool `gorm:"not null;default:false"`

	TotalBrands         int    `gorm:"not null;default:50"`
	ResearchMethodology string `gorm:"type:text"`
	DataCollectionStart *time.Time
	DataCollectionEnd   *time.Time
	PublicationDate     *time.Time

	fields.Timestamps
}

// TableName pins the table name.
func (YearRecord) TableName() string { return "yearly_rankings" }

// Counts are the published records tagged with one year.
type Counts struct {
	Brands    int64
	BlogPosts int64
	Insights  int64
}

// Migration types and states.
const (
	MigrationNewYearSetup = "new_year_setup"
	MigrationBrandCopy    = "brand_copy"

	MigrationCompleted = "completed"
	MigrationFailed    = "failed"
)

// MigrationLog records a data operation between years.
type MigrationLog struct {
	ID             uint   `gorm:"primaryKey"`
	MigrationType  string `gorm:"size:20;not null"`
	FromYear       *int
	ToYear         int    `gorm:"not null"`
	Status         string `gorm:"size:20;not null;default:'pending'"`
	Description    string `gorm:"type:text"`
	ItemsProcessed int    `gorm:"not null;default:0"`
	ItemsTotal     int    `gorm:"not null;default:0"`
	ErrorMessage   string `gorm:"type:text"`
	InitiatedBy    string `gorm:"size:150"`
	StartedAt      *time.Time
	CompletedAt    *time.Time

	fields.Timestamps
}

// TableName pins the table name.
func (MigrationLog) TableName() string { return "data_migration_logs" }
