// Package entity defines system-wide configuration entries for the dashboard.
package entity

import "topbrands_backend/internal/shared/fields"

// Configuration is a key/value setting. Public entries are visible to every
// dashboard user; entries that require admin may only be changed by admins.
type Configuration struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"size:100;not null;uniqueIndex"`
	Value       string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`

	IsActive      bool `gorm:"not null;default:false"`
	IsPublic      bool `gorm:"not null;default:false"`
	RequiresAdmin bool `gorm:"not null;default:false"`

	fields.Timestamps
}

// TableName pins the table name.
func (Configuration) TableName() string { return "system_configurations" }

// VisibleTo reports whether a dashboard user sees c in listings.
func (c Configuration) VisibleTo(admin bool) bool {
	return c.IsActive && (admin || c.IsPublic)
}

// EditableBy reports whether a dashboard user may change or delete c.
func (c Configuration) EditableBy(admin bool) bool {
	return admin || !c.RequiresAdmin
}
