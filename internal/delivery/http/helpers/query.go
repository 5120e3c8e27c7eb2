package helpers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventcatalog/internal/domain"
)

// ParseID reads the int64 path value name. On failure it writes a 400 and returns false.
func ParseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name+": "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

// Query reads typed query parameters, collecting every parse problem in one
// ValidationError.
type Query struct {
	values url.Values
	errs   *domain.ValidationError
}

// NewQuery wraps the query string of r.
func NewQuery(r *http.Request) *Query {
	return &Query{values: r.URL.Query(), errs: domain.NewValidationError()}
}

// String returns the trimmed value of key, or "".
func (q *Query) String(key string) string {
	return strings.TrimSpace(q.values.Get(key))
}

// Int returns a pointer to the integer value of key, or nil when absent.
func (q *Query) Int(key string) *int {
	s := q.String(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		q.errs.Add(key, "must be an integer")
		return nil
	}
	return &v
}

// Int64 is Int for 64-bit ids.
func (q *Query) Int64(key string) *int64 {
	s := q.String(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		q.errs.Add(key, "must be an integer")
		return nil
	}
	return &v
}

// Time parses key as RFC 3339. An offset sent with an unescaped '+' decodes to a
// space, so spaces are read back as '+'.
func (q *Query) Time(key string) *time.Time {
	s := q.String(key)
	if s == "" {
		return nil
	}
	v, err := time.Parse(time.RFC3339, strings.ReplaceAll(s, " ", "+"))
	if err != nil {
		q.errs.Add(key, "must be an RFC 3339 timestamp")
		return nil
	}
	return &v
}

// Page reads page, size, sort and direction.
func (q *Query) Page() domain.PageInput {
	return domain.PageInput{
		Page:      q.Int("page"),
		Size:      q.Int("size"),
		Sort:      q.String("sort"),
		Direction: q.String("direction"),
	}
}

// Err returns the collected parse problems, or nil.
func (q *Query) Err() *domain.ValidationError {
	if q.errs.Empty() {
		return nil
	}
	return q.errs
}
