// Package params reads typed path and query parameters from gin requests.
package params

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"topbrands_backend/internal/shared/apperror"
)

// ErrInvalidYear is returned for a year parameter that is not an integer.
var ErrInvalidYear = apperror.BadRequest("year must be an integer")

// ErrInvalidID is returned for a malformed numeric path id.
var ErrInvalidID = apperror.BadRequest("invalid id")

// Year reads ?year=. A missing parameter yields nil so the effective year applies.
func Year(c *gin.Context) (*int, error) {
	raw, ok := c.GetQuery("year")
	if !ok || raw == "" {
		return nil, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrInvalidYear
	}
	return &y, nil
}

// Bool reads an optional boolean query flag. Anything other than
// true/false/1/0 is treated as absent.
func Bool(c *gin.Context, name string) *bool {
	v, err := strconv.ParseBool(c.Query(name))
	if err != nil {
		return nil
	}
	return &v
}

// ID reads a positive numeric path parameter.
func ID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// PathYear reads a year from the path.
func PathYear(c *gin.Context, name string) (int, error) {
	y, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, ErrInvalidYear
	}
	return y, nil
}
