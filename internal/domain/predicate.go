package domain

import (
	"cmp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names shared by predicates, sort requests and storage adapters.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldCity         = "city"
	FieldCountry      = "country"
	FieldStatus       = "status"
	FieldCapacity     = "capacity"
	FieldCategory     = "category"
	FieldVenueID      = "venueId"
	FieldEventDate    = "eventDate"
	FieldEndDate      = "endDate"
	FieldTicketPrice  = "ticketPrice"
	FieldCreatedAt    = "createdAt"
	FieldUpdatedAt    = "updatedAt"
	FieldVenueCity    = "venue.city"
	FieldVenueCountry = "venue.country"
)

// Op is a comparison operator of a Condition.
type Op int

const (
	OpEqual Op = iota
	// OpEqualFold is case-insensitive exact string equality.
	OpEqualFold
	OpGreaterOrEqual
	OpLessOrEqual
)

func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpEqualFold:
		return "=~"
	case OpGreaterOrEqual:
		return ">="
	case OpLessOrEqual:
		return "<="
	}
	return "?"
}

// Condition is one filter term: Field Op Value.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Predicate is a conjunction of conditions. The zero Predicate matches everything.
type Predicate struct {
	Conditions []Condition
}

// And returns a new predicate with c appended.
func (p Predicate) And(c Condition) Predicate {
	conds := make([]Condition, len(p.Conditions), len(p.Conditions)+1)
	copy(conds, p.Conditions)
	return Predicate{Conditions: append(conds, c)}
}

// IsEmpty reports whether the predicate has no conditions.
func (p Predicate) IsEmpty() bool { return len(p.Conditions) == 0 }

// Record exposes attribute values by field name for in-process evaluation.
// ok is false when the attribute is absent (e.g. an unset end date).
type Record interface {
	FieldValue(field string) (value any, ok bool)
}

// Matches evaluates the predicate against r. Absent attributes never match.
func (p Predicate) Matches(r Record) bool {
	for _, c := range p.Conditions {
		v, ok := r.FieldValue(c.Field)
		if !ok || !c.matches(v) {
			return false
		}
	}
	return true
}

func (c Condition) matches(v any) bool {
	switch c.Op {
	case OpEqualFold:
		s, ok1 := v.(string)
		want, ok2 := c.Value.(string)
		return ok1 && ok2 && strings.EqualFold(s, want)
	case OpEqual:
		r, ok := CompareValues(v, c.Value)
		return ok && r == 0
	case OpGreaterOrEqual:
		r, ok := CompareValues(v, c.Value)
		return ok && r >= 0
	case OpLessOrEqual:
		r, ok := CompareValues(v, c.Value)
		return ok && r <= 0
	}
	return false
}

// CompareValues orders two attribute values of the same kind.
// ok is false when the kinds differ or are not comparable.
func CompareValues(a, b any) (result int, ok bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return cmp.Compare(x, y), ok
	case int:
		switch y := b.(type) {
		case int:
			return cmp.Compare(x, y), true
		case int64:
			return cmp.Compare(int64(x), y), true
		}
	case int64:
		switch y := b.(type) {
		case int64:
			return cmp.Compare(x, y), true
		case int:
			return cmp.Compare(x, int64(y)), true
		}
	case time.Time:
		y, ok := b.(time.Time)
		return x.Compare(y), ok
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return x.Cmp(y), ok
	}
	return 0, false
}
