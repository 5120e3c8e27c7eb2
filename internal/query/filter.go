// Package query turns sparse list filters and raw paging input into storage-agnostic
// predicates and normalized page requests. It performs no I/O.
package query

import (
	"strings"

	"eventcatalog/internal/domain"
)

// ComposeVenueFilter builds the conjunction of every non-blank venue filter field.
// An empty filter yields the empty predicate, which matches all venues.
func ComposeVenueFilter(f domain.VenueFilter) (domain.Predicate, error) {
	var p domain.Predicate
	verr := domain.NewValidationError()

	p = equalFold(p, domain.FieldCity, f.City)
	p = equalFold(p, domain.FieldCountry, f.Country)
	if s := strings.TrimSpace(f.Status); s != "" {
		st, ok := domain.ParseVenueStatus(s)
		if !ok {
			verr.Add("status", "must be one of ACTIVE, INACTIVE, MAINTENANCE")
		} else {
			p = p.And(domain.Condition{Field: domain.FieldStatus, Op: domain.OpEqualFold, Value: string(st)})
		}
	}
	if f.MinCapacity != nil {
		if *f.MinCapacity < 0 {
			verr.Add("minCapacity", "must be greater than or equal to 0")
		} else {
			p = p.And(domain.Condition{Field: domain.FieldCapacity, Op: domain.OpGreaterOrEqual, Value: *f.MinCapacity})
		}
	}
	if err := verr.OrNil(); err != nil {
		return domain.Predicate{}, err
	}
	return p, nil
}

// ComposeEventFilter builds the conjunction of every non-blank event filter field.
// City and country refer to the event's venue. The date range is inclusive and either end may be open.
func ComposeEventFilter(f domain.EventFilter) (domain.Predicate, error) {
	var p domain.Predicate
	verr := domain.NewValidationError()

	if f.VenueID != nil {
		if *f.VenueID <= 0 {
			verr.Add("venueId", "must be a positive number")
		} else {
			p = p.And(domain.Condition{Field: domain.FieldVenueID, Op: domain.OpEqual, Value: *f.VenueID})
		}
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		st, ok := domain.ParseEventStatus(s)
		if !ok {
			verr.Add("status", "must be one of SCHEDULED, ACTIVE, CANCELLED, COMPLETED")
		} else {
			p = p.And(domain.Condition{Field: domain.FieldStatus, Op: domain.OpEqualFold, Value: string(st)})
		}
	}
	p = equalFold(p, domain.FieldCategory, f.Category)
	p = equalFold(p, domain.FieldVenueCity, f.City)
	p = equalFold(p, domain.FieldVenueCountry, f.Country)

	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		verr.Add("from", "must not be after to")
	} else {
		if f.From != nil {
			p = p.And(domain.Condition{Field: domain.FieldEventDate, Op: domain.OpGreaterOrEqual, Value: *f.From})
		}
		if f.To != nil {
			p = p.And(domain.Condition{Field: domain.FieldEventDate, Op: domain.OpLessOrEqual, Value: *f.To})
		}
	}
	if err := verr.OrNil(); err != nil {
		return domain.Predicate{}, err
	}
	return p, nil
}

func equalFold(p domain.Predicate, field, value string) domain.Predicate {
	value = strings.TrimSpace(value)
	if value == "" {
		return p
	}
	return p.And(domain.Condition{Field: field, Op: domain.OpEqualFold, Value: value})
}
