package query

import (
	"math"
	"slices"
	"strings"

	"eventcatalog/internal/domain"
)

// DefaultMaxPageSize bounds the page size when the caller configures none.
const DefaultMaxPageSize = 100

// Sortable fields per resource type, in their external spelling.
var (
	VenueSortFields = []string{
		domain.FieldID, domain.FieldName, domain.FieldCity, domain.FieldCountry,
		domain.FieldCapacity, domain.FieldStatus, domain.FieldCreatedAt, domain.FieldUpdatedAt,
	}
	EventSortFields = []string{
		domain.FieldID, domain.FieldName, domain.FieldEventDate, domain.FieldEndDate,
		domain.FieldCapacity, domain.FieldTicketPrice, domain.FieldStatus, domain.FieldCategory,
		domain.FieldVenueID, domain.FieldCreatedAt, domain.FieldUpdatedAt,
	}
)

// Normalizer validates paging input against one resource's sortable fields.
type Normalizer struct {
	sortable []string
	maxSize  int
}

// NewNormalizer returns a Normalizer for the given allow-list. maxSize <= 0 uses DefaultMaxPageSize.
func NewNormalizer(sortable []string, maxSize int) *Normalizer {
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}
	return &Normalizer{sortable: sortable, maxSize: maxSize}
}

// Normalize applies defaults (page 0, size 10, sort id asc), clamps size to the maximum
// and collects every problem into one ValidationError.
func (n *Normalizer) Normalize(in domain.PageInput) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 0, Size: domain.DefaultPageSize, Sort: domain.Sort{Field: domain.FieldID}}
	verr := domain.NewValidationError()

	if in.Page != nil {
		if *in.Page < 0 {
			verr.Add("page", "must be greater than or equal to 0")
		} else {
			req.Page = *in.Page
		}
	}
	if in.Size != nil {
		switch {
		case *in.Size <= 0:
			verr.Add("size", "must be greater than 0")
		case *in.Size > n.maxSize:
			req.Size = n.maxSize
		default:
			req.Size = *in.Size
		}
	}
	if req.Page > math.MaxInt/req.Size {
		verr.Add("page", "is too large for the requested size")
	}
	if field := strings.TrimSpace(in.Sort); field != "" {
		if !slices.Contains(n.sortable, field) {
			verr.Add("sort", "must be one of "+strings.Join(n.sortable, ", "))
		} else {
			req.Sort.Field = field
		}
	}
	switch strings.ToLower(strings.TrimSpace(in.Direction)) {
	case "", domain.SortAsc:
	case domain.SortDesc:
		req.Sort.Desc = true
	default:
		verr.Add("direction", "must be asc or desc")
	}

	if err := verr.OrNil(); err != nil {
		return domain.PageRequest{}, err
	}
	return req, nil
}

// MaxSize returns the configured page size ceiling.
func (n *Normalizer) MaxSize() int { return n.maxSize }
