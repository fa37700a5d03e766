// Package usecase implements the ranking year registry.
package usecase

import (
	"topbrands_backend/internal/feature/years/domain/entity"
	"topbrands_backend/internal/shared/apperror"
)

var (
	// ErrInvalidYear is returned for years outside the allowed range.
	ErrInvalidYear = apperror.Newf(apperror.KindBadRequest, "year must be between %d and %d", entity.MinYear, entity.MaxYear)

	// ErrDuplicateYear is returned when the year already exists.
	ErrDuplicateYear = apperror.Conflict("year already exists")

	// ErrYearNotFound is returned for unknown years.
	ErrYearNotFound = apperror.NotFound("year not found")
)
