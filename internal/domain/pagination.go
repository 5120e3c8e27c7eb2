package domain

import "math"

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultPageSize is used when the caller does not ask for a size.
const DefaultPageSize = 10

// PageInput is the raw, unvalidated paging request of a list call. Nil and blank values take defaults.
type PageInput struct {
	Page      *int
	Size      *int
	Sort      string
	Direction string
}

// PageRequest is a normalized paging request: 0-based page, positive size,
// an allow-listed sort field and a direction.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Sort orders results by Field. Storage adapters break ties by id ascending.
type Sort struct {
	Field string
	Desc  bool
}

// Direction returns "asc" or "desc".
func (s Sort) Direction() string {
	if s.Desc {
		return SortDesc
	}
	return SortAsc
}

// Offset returns the row offset for the current page (0-based).
// Formula: Page * Size, saturating at math.MaxInt.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a listing together with the metadata needed to render pagination.
type Page[T any] struct {
	Items         []T `json:"items"`
	TotalElements int `json:"totalElements"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
}

// NewPage builds a Page for req over a result set of total elements.
func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return Page[T]{
		Items:         items,
		TotalElements: total,
		Page:          req.Page,
		Size:          req.Size,
		TotalPages:    pages,
	}
}
