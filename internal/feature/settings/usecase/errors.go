// Package usecase implements the business logic for system configurations.
package usecase

import "topbrands_backend/internal/shared/apperror"

var (
	// ErrConfigurationNotFound is returned when the entry is missing, inactive or hidden from the caller.
	ErrConfigurationNotFound = apperror.NotFound("configuration not found")

	// ErrDuplicateKey is returned when the key is already used.
	ErrDuplicateKey = apperror.Conflict("a configuration with this key already exists")

	// ErrAdminRequired is returned when a non-admin modifies an admin-only entry.
	ErrAdminRequired = apperror.Forbidden("Admin access required to modify this configuration")
)
