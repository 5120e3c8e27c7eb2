// Package memory is the in-process Storage implementation: maps guarded by a RWMutex
// with atomically incremented identity counters. Every value crossing the package
// boundary is a copy.
package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"eventcatalog/internal/domain"
)

// Store holds venues and events. Construct one per process (or per test) with New.
type Store struct {
	mu     sync.RWMutex
	venues map[int64]*domain.Venue
	events map[int64]*domain.Event

	venueSeq atomic.Int64
	eventSeq atomic.Int64

	// txMu serializes units of work run through WithTx.
	txMu sync.Mutex
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		venues: make(map[int64]*domain.Venue),
		events: make(map[int64]*domain.Event),
	}
}

func (s *Store) Venues() domain.VenueRepository { return &venueRepository{s: s} }

func (s *Store) Events() domain.EventRepository { return &eventRepository{s: s} }

// WithTx runs fn while holding the unit-of-work lock, so check-then-write sequences of
// concurrent units never interleave. Writes are applied immediately and are not rolled
// back if fn fails afterwards.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx domain.Storage) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, s)
}

func (s *Store) Ping(context.Context) error { return nil }

// eventRecord joins an event with its venue for predicates on venue attributes.
type eventRecord struct {
	*domain.Event
	venue *domain.Venue
}

func (r eventRecord) FieldValue(field string) (any, bool) {
	switch field {
	case domain.FieldVenueCity:
		if r.venue == nil {
			return nil, false
		}
		return r.venue.City, true
	case domain.FieldVenueCountry:
		if r.venue == nil {
			return nil, false
		}
		return r.venue.Country, true
	}
	return r.Event.FieldValue(field)
}

// sortRecords orders items by s.Field, absent values first, breaking ties by id ascending.
func sortRecords[T domain.Record](items []T, s domain.Sort) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := compareField(a, b, s.Field); c != 0 {
			if s.Desc {
				return -c
			}
			return c
		}
		return compareField(a, b, domain.FieldID)
	})
}

func compareField(a, b domain.Record, field string) int {
	av, aok := a.FieldValue(field)
	bv, bok := b.FieldValue(field)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	c, _ := domain.CompareValues(av, bv)
	return c
}

// window returns the slice of items for req.
func window[T any](items []T, req domain.PageRequest) []T {
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + min(req.Size, len(items)-start)
	return items[start:end]
}
