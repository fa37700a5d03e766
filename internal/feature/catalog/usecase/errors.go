// Package usecase implements the business logic for classifications.
package usecase

import "topbrands_backend/internal/shared/apperror"

var (
	// ErrClassificationNotFound is returned when no classification matches.
	ErrClassificationNotFound = apperror.NotFound("classification not found")

	// ErrDuplicateClassification is returned when name or slug is already used within the kind.
	ErrDuplicateClassification = apperror.Conflict("a classification with this name or slug already exists")

	// ErrUnknownKind is returned for kinds outside category, industry, location, blog_category.
	ErrUnknownKind = apperror.BadRequest("unknown classification kind")
)
