// Package usecase implements the business logic for brand rankings.
package usecase

import (
	"errors"

	"topbrands_backend/internal/shared/apperror"
)

var (
	// ErrBrandNotFound is returned when no published brand matches in the effective year.
	ErrBrandNotFound = apperror.NotFound("brand not found")

	// ErrDuplicateBrand is returned when the slug is already used in the same year.
	ErrDuplicateBrand = apperror.Conflict("a brand with this slug already exists for this year")

	// ErrUnknownCounter is returned for counters brands do not track.
	ErrUnknownCounter = apperror.BadRequest("unknown counter")

	// ErrInvalidRating is returned by PopularityScore for ratings outside 0-5.
	ErrInvalidRating = errors.New("customer rating out of range")
)
