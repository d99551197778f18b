// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the request does not supply one.
const DefaultLimit = 50

// MaxLimit caps the requested page size so a single request cannot pull
// the whole collection.
const MaxLimit = 200

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseLimit extracts the "limit" query parameter, clamped to MaxLimit.
// Returns DefaultLimit if not present or invalid.
func ParseLimit(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "limit"))
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Meta is the pagination block returned alongside paged list results.
type Meta struct {
	CurrentPage    int   `json:"currentPage"`
	TotalPages     int   `json:"totalPages"`
	TotalQuestions int64 `json:"totalQuestions"`
	Limit          int   `json:"limit"`
}

// NewMeta computes the pagination block for a page of a list with total
// matching rows. TotalPages is ceil(total/limit); an empty list has zero
// pages, and a page past the end still reports the true totals.
func NewMeta(page, limit int, total int64) Meta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Meta{
		CurrentPage:    page,
		TotalPages:     pages,
		TotalQuestions: total,
		Limit:          limit,
	}
}

// Skip returns the number of rows to skip for the given page.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}
