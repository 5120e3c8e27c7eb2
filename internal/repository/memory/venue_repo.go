package memory

import (
	"context"

	"eventcatalog/internal/domain"
)

type venueRepository struct {
	s *Store
}

func (r *venueRepository) Save(ctx context.Context, v *domain.Venue) (*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if v.ID != 0 {
		if _, ok := r.s.venues[v.ID]; !ok {
			return nil, domain.NewNotFound(domain.ResourceVenue, v.ID)
		}
	}
	if r.nameTakenLocked(v.Name, v.ID) {
		return nil, &domain.DuplicateError{Resource: domain.ResourceVenue, Field: "name", Value: v.Name}
	}

	stored := v.Clone()
	if stored.ID == 0 {
		stored.ID = r.s.venueSeq.Add(1)
	}
	r.s.venues[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *venueRepository) FindByID(ctx context.Context, id int64) (*domain.Venue, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.venues[id]
	if !ok {
		return nil, domain.NewNotFound(domain.ResourceVenue, id)
	}
	return v.Clone(), nil
}

func (r *venueRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Venue], error) {
	return r.FindFiltered(ctx, domain.Predicate{}, page)
}

func (r *venueRepository) FindFiltered(ctx context.Context, pred domain.Predicate, page domain.PageRequest) (domain.Page[*domain.Venue], error) {
	r.s.mu.RLock()
	matched := make([]*domain.Venue, 0, len(r.s.venues))
	for _, v := range r.s.venues {
		if pred.Matches(v) {
			matched = append(matched, v.Clone())
		}
	}
	r.s.mu.RUnlock()

	sortRecords(matched, page.Sort)
	return domain.NewPage(window(matched, page), len(matched), page), nil
}

func (r *venueRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTakenLocked(name, excludeID), nil
}

func (r *venueRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.venues[id]
	return ok, nil
}

// DeleteByID removes the venue together with every event held there.
func (r *venueRepository) DeleteByID(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.venues[id]; !ok {
		return domain.NewNotFound(domain.ResourceVenue, id)
	}
	for eid, e := range r.s.events {
		if e.VenueID == id {
			delete(r.s.events, eid)
		}
	}
	delete(r.s.venues, id)
	return nil
}

func (r *venueRepository) nameTakenLocked(name string, excludeID int64) bool {
	for id, v := range r.s.venues {
		if id != excludeID && v.Name == name {
			return true
		}
	}
	return false
}
