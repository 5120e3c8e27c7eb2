package postgres

import (
	"fmt"
	"strings"

	"eventcatalog/internal/domain"
)

// column maps an external field name to a SQL expression.
type column struct {
	expr string
	// text columns sort with the C collation so ordering is byte-wise.
	text bool
}

var venueColumns = map[string]column{
	domain.FieldID:        {expr: "v.id"},
	domain.FieldName:      {expr: "v.name", text: true},
	domain.FieldCity:      {expr: "v.city", text: true},
	domain.FieldCountry:   {expr: "v.country", text: true},
	domain.FieldCapacity:  {expr: "v.capacity"},
	domain.FieldStatus:    {expr: "v.status", text: true},
	domain.FieldCreatedAt: {expr: "v.created_at"},
	domain.FieldUpdatedAt: {expr: "v.updated_at"},
}

var eventColumns = map[string]column{
	domain.FieldID:           {expr: "e.id"},
	domain.FieldName:         {expr: "e.name", text: true},
	domain.FieldEventDate:    {expr: "e.event_date"},
	domain.FieldEndDate:      {expr: "e.end_date"},
	domain.FieldCapacity:     {expr: "e.capacity"},
	domain.FieldTicketPrice:  {expr: "e.ticket_price"},
	domain.FieldStatus:       {expr: "e.status", text: true},
	domain.FieldCategory:     {expr: "e.category", text: true},
	domain.FieldVenueID:      {expr: "e.venue_id"},
	domain.FieldCreatedAt:    {expr: "e.created_at"},
	domain.FieldUpdatedAt:    {expr: "e.updated_at"},
	domain.FieldVenueCity:    {expr: "v.city", text: true},
	domain.FieldVenueCountry: {expr: "v.country", text: true},
}

// whereClause renders pred as " WHERE ..." with positional args starting at $1.
// The empty predicate renders as "".
func whereClause(pred domain.Predicate, cols map[string]column) (string, []any, error) {
	if pred.IsEmpty() {
		return "", nil, nil
	}
	parts := make([]string, 0, len(pred.Conditions))
	args := make([]any, 0, len(pred.Conditions))
	for _, c := range pred.Conditions {
		col, ok := cols[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter field %q", c.Field)
		}
		args = append(args, c.Value)
		n := len(args)
		switch c.Op {
		case domain.OpEqual:
			parts = append(parts, fmt.Sprintf("%s = $%d", col.expr, n))
		case domain.OpEqualFold:
			parts = append(parts, fmt.Sprintf("LOWER(%s) = LOWER($%d)", col.expr, n))
		case domain.OpGreaterOrEqual:
			parts = append(parts, fmt.Sprintf("%s >= $%d", col.expr, n))
		case domain.OpLessOrEqual:
			parts = append(parts, fmt.Sprintf("%s <= $%d", col.expr, n))
		default:
			return "", nil, fmt.Errorf("unsupported operator %s", c.Op)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

// orderClause renders the sort with NULLs treated as the smallest value and id as tie-breaker.
func orderClause(s domain.Sort, cols map[string]column) (string, error) {
	col, ok := cols[s.Field]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", s.Field)
	}
	expr := col.expr
	if col.text {
		expr += ` COLLATE "C"`
	}
	dir := "ASC NULLS FIRST"
	if s.Desc {
		dir = "DESC NULLS LAST"
	}
	idCol := cols[domain.FieldID].expr
	if col.expr == idCol {
		return fmt.Sprintf(" ORDER BY %s %s", expr, dir), nil
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", expr, dir, idCol), nil
}

// limitClause appends LIMIT/OFFSET placeholders after the existing args.
func limitClause(args []any, page domain.PageRequest) (string, []any) {
	n := len(args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), append(args, page.Size, page.Offset())
}

func needsVenueJoin(pred domain.Predicate) bool {
	for _, c := range pred.Conditions {
		if c.Field == domain.FieldVenueCity || c.Field == domain.FieldVenueCountry {
			return true
		}
	}
	return false
}
