package request

import (
	"net/http"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var ErrInvalidPage = apperror.New(http.StatusBadRequest, "invalid pagination: from must be >= 0 and size must be > 0")

// Page is an optional offset window. Paging only applies when both From and
// Size are set, otherwise the whole ordered result is returned.
type Page struct {
	From *int `form:"from"`
	Size *int `form:"size"`
}

// NewPage builds a page with both bounds set.
func NewPage(from, size int) Page {
	return Page{From: &from, Size: &size}
}

// Paged reports whether both bounds were supplied.
func (p Page) Paged() bool {
	return p.From != nil && p.Size != nil
}

// Validate checks the bounds when the page is in effect.
func (p Page) Validate() error {
	if !p.Paged() {
		return nil
	}
	if *p.From < 0 || *p.Size <= 0 {
		return ErrInvalidPage
	}
	return nil
}

// Offset returns the number of rows to skip. Call only after Validate.
func (p Page) Offset() uint64 {
	if !p.Paged() {
		return 0
	}
	return uint64(*p.From)
}

// Limit returns the window size, 0 when unbounded.
func (p Page) Limit() uint64 {
	if !p.Paged() {
		return 0
	}
	return uint64(*p.Size)
}

// Apply slices items the way the SQL OFFSET/LIMIT would.
func Apply[T any](items []T, p Page) []T {
	if !p.Paged() {
		return items
	}
	from := int(p.Offset())
	if from >= len(items) {
		return nil
	}
	to := len(items)
	if p.Limit() < uint64(to-from) {
		to = from + int(p.Limit())
	}
	return items[from:to]
}
