// Package entity defines the dashboard user for the auth feature.
package entity

import (
	"time"

	"topbrands_backend/internal/shared/fields"
)

// Role is the dashboard role shown to clients.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// User is a dashboard account.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:150;not null"`
	Email    string `gorm:"size:255"`

	// Password is the bcrypt hash, never plaintext.
	Password string `gorm:"size:255;not null"`

	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`

	IsActive    bool `gorm:"not null;default:false"`
	IsStaff     bool `gorm:"not null;default:false"`
	IsSuperuser bool `gorm:"not null;default:false"`
	Role        Role `gorm:"size:20;not null;default:'editor'"`

	LoginCount int `gorm:"not null;default:0"`
	LastLogin  *time.Time

	fields.Timestamps
}

// TableName pins the table name.
func (User) TableName() string { return "dashboard_users" }

// IsAdmin reports whether the user holds admin capability.
func (u User) IsAdmin() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}

// CanAccessDashboard reports whether the user may use dashboard endpoints.
func (u User) CanAccessDashboard() bool {
	return u.IsActive && (u.IsStaff || u.IsAdmin())
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
