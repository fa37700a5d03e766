// Package usecase implements the business logic for market insights.
package usecase

import "topbrands_backend/internal/shared/apperror"

var (
	// ErrInsightNotFound is returned when no published insight matches in the effective year.
	ErrInsightNotFound = apperror.NotFound("insight not found")

	// ErrDuplicateInsight is returned when the slug is already used in the same year.
	ErrDuplicateInsight = apperror.Conflict("an insight with this slug already exists for this year")

	// ErrUnknownCounter is returned for counters insights do not track.
	ErrUnknownCounter = apperror.BadRequest("unknown counter")
)
