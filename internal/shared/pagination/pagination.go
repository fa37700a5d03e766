// Package pagination parses page parameters and builds page envelopes.
package pagination

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// maxOffset bounds Offset so that huge page numbers stay a valid SQL
	// OFFSET on every driver. Such pages are simply empty.
	maxOffset = math.MaxInt32
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip, capped at maxOffset.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > maxOffset/p.Size {
		return maxOffset
	}
	return (p.Number - 1) * p.Size
}

// Limits bounds page sizes.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits mirrors the public API defaults.
var DefaultLimits = Limits{Default: DefaultPageSize, Max: MaxPageSize}

// FromQuery reads page and page_size. Invalid values fall back to defaults
// and page_size is capped at l.Max.
func (l Limits) FromQuery(c *gin.Context) Page {
	p := Page{Number: 1, Size: l.Default}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.Number = n
	}
	if s, err := strconv.Atoi(c.Query("page_size")); err == nil && s > 0 {
		p.Size = s
	}
	if p.Size > l.Max {
		p.Size = l.Max
	}
	if last := maxOffset/p.Size + 1; p.Number > last {
		p.Number = last
	}
	return p
}

// Result is the list envelope returned by every paginated endpoint.
type Result[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewResult builds the envelope with next/previous links derived from the request URL.
func NewResult[T any](c *gin.Context, page Page, total int64, items []T) Result[T] {
	if items == nil {
		items = []T{}
	}
	res := Result[T]{Count: total, Results: items}
	if int64(page.Offset()+len(items)) < total {
		res.Next = pageLink(c, page.Number+1)
	}
	if page.Number > 1 {
		res.Previous = pageLink(c, page.Number-1)
	}
	return res
}

func pageLink(c *gin.Context, number int) *string {
	u := url.URL{Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
