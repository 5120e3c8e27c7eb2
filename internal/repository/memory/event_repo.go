package memory

import (
	"context"

	"eventcatalog/internal/domain"
)

type eventRepository struct {
	s *Store
}

// Save enforces the venue reference and name uniqueness under the write lock.
func (r *eventRepository) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e.ID != 0 {
		if _, ok := r.s.events[e.ID]; !ok {
			return nil, domain.NewNotFound(domain.ResourceEvent, e.ID)
		}
	}
	if _, ok := r.s.venues[e.VenueID]; !ok {
		return nil, domain.NewNotFound(domain.ResourceVenue, e.VenueID)
	}
	if r.nameTakenLocked(e.Name, e.ID) {
		return nil, &domain.DuplicateError{Resource: domain.ResourceEvent, Field: "name", Value: e.Name}
	}

	stored := e.Clone()
	if stored.ID == 0 {
		stored.ID = r.s.eventSeq.Add(1)
	}
	r.s.events[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceEvent, id)
	}
	return e.Clone(), nil
}

func (r *eventRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Event], error) {
	return r.FindFiltered(ctx, domain.Predicate{}, page)
}

func (r *eventRepository) FindFiltered(ctx context.Context, pred domain.Predicate, page domain.PageRequest) (domain.Page[*domain.Event], error) {
	r.s.mu.RLock()
	matched := make([]eventRecord, 0, len(r.s.events))
	for _, e := range r.s.events {
		rec := eventRecord{Event: e, venue: r.s.venues[e.VenueID]}
		if pred.Matches(rec) {
			matched = append(matched, eventRecord{Event: e.Clone()})
		}
	}
	r.s.mu.RUnlock()

	sortRecords(matched, page.Sort)
	items := window(matched, page)
	events := make([]*domain.Event, len(items))
	for i, rec := range items {
		events[i] = rec.Event
	}
	return domain.NewPage(events, len(matched), page), nil
}

func (r *eventRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTakenLocked(name, excludeID), nil
}

func (r *eventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.events[id]
	return ok, nil
}

func (r *eventRepository) DeleteByID(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return domain.NewNotFound(domain.ResourceEvent, id)
	}
	delete(r.s.events, id)
	return nil
}

func (r *eventRepository) nameTakenLocked(name string, excludeID int64) bool {
	for id, e := range r.s.events {
		if id != excludeID && e.Name == name {
			return true
		}
	}
	return false
}
