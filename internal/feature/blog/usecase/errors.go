// Package usecase implements the business logic for blog posts.
package usecase

import "topbrands_backend/internal/shared/apperror"

var (
	// ErrPostNotFound is returned when no published post matches in the effective year.
	ErrPostNotFound = apperror.NotFound("blog post not found")

	// ErrDuplicatePost is returned when the slug is already used in the same year.
	ErrDuplicatePost = apperror.Conflict("a blog post with this slug already exists for this year")

	// ErrUnknownCounter is returned for counters posts do not track.
	ErrUnknownCounter = apperror.BadRequest("unknown counter")

	// ErrTagNotFound is returned when no tag has the requested id.
	ErrTagNotFound = apperror.NotFound("blog tag not found")
)
