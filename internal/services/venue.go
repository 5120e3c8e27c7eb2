package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/query"
)

type venueService struct {
	storage        domain.Storage
	pages          *query.Normalizer
	contextTimeout time.Duration
	options
}

// NewVenueService returns the venue lifecycle service over storage.
func NewVenueService(storage domain.Storage, timeout time.Duration, opts ...Option) domain.VenueService {
	o := buildOptions(opts)
	return &venueService{
		storage:        storage,
		pages:          query.NewNormalizer(query.VenueSortFields, o.maxPageSize),
		contextTimeout: timeout,
		options:        o,
	}
}

func (s *venueService) Create(ctx context.Context, in domain.VenueInput) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if verr := s.validator.Venue(in); verr != nil {
		return nil, verr
	}

	venue := domain.NewVenue(in, s.now())
	var saved *domain.Venue
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		if err := ensureVenueNameFree(ctx, tx, venue.Name, 0); err != nil {
			return err
		}
		var err error
		saved, err = tx.Venues().Save(ctx, venue)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.logger.InfoContext(ctx, "venue created", "venue_id", saved.ID, "status", saved.Status)
	return saved, nil
}

func (s *venueService) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	v, err := s.storage.Venues().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (s *venueService) List(ctx context.Context, filter domain.VenueFilter, page domain.PageInput) (domain.Page[*domain.Venue], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pred, ferr := query.ComposeVenueFilter(filter)
	req, perr := s.pages.Normalize(page)
	if err := mergeInvalid(ferr, perr); err != nil {
		return domain.Page[*domain.Venue]{}, err
	}

	var (
		result domain.Page[*domain.Venue]
		err    error
	)
	if pred.IsEmpty() {
		result, err = s.storage.Venues().FindAll(ctx, req)
	} else {
		result, err = s.storage.Venues().FindFiltered(ctx, pred, req)
	}
	if err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("list venues: %w", err)
	}
	return result, nil
}

func (s *venueService) Update(ctx context.Context, id int64, in domain.VenueInput) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if verr := s.validator.Venue(in); verr != nil {
		return nil, verr
	}

	now := s.now()
	var (
		saved      *domain.Venue
		transition bool
	)
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		venue, err := tx.Venues().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if name := strings.TrimSpace(in.Name); name != venue.Name {
			if err := ensureVenueNameFree(ctx, tx, name, id); err != nil {
				return err
			}
		}
		venue.Apply(in, now)
		if target, ok := domain.ParseVenueStatus(in.Status); ok && target != venue.Status {
			if err := venue.TransitionTo(target, now); err != nil {
				return err
			}
			transition = true
		}
		saved, err = tx.Venues().Save(ctx, venue)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	if transition {
		s.recorder.RecordTransition(domain.ResourceVenue, string(saved.Status))
	}
	s.logger.InfoContext(ctx, "venue updated", "venue_id", saved.ID)
	return saved, nil
}

// Delete removes the venue and every event held there.
func (s *venueService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		return tx.Venues().DeleteByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	s.logger.InfoContext(ctx, "venue deleted", "venue_id", id)
	return nil
}

func (s *venueService) ChangeStatus(ctx context.Context, id int64, target string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	status, ok := domain.ParseVenueStatus(target)
	if !ok {
		return nil, domain.InvalidField("status", "must be one of ACTIVE, INACTIVE, MAINTENANCE")
	}

	var (
		saved   *domain.Venue
		changed bool
	)
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		venue, err := tx.Venues().FindByID(ctx, id)
		if err != nil {
			return err
		}
		from := venue.Status
		if err := venue.TransitionTo(status, s.now()); err != nil {
			return err
		}
		if venue.Status == from {
			saved = venue
			return nil
		}
		changed = true
		saved, err = tx.Venues().Save(ctx, venue)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("change venue status: %w", err)
	}
	if !changed {
		return saved, nil
	}
	s.recorder.RecordTransition(domain.ResourceVenue, string(saved.Status))
	s.logger.InfoContext(ctx, "venue status changed", "venue_id", saved.ID, "status", saved.Status)
	return saved, nil
}

func ensureVenueNameFree(ctx context.Context, tx domain.Storage, name string, excludeID int64) error {
	taken, err := tx.Venues().ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check venue name: %w", err)
	}
	if taken {
		return &domain.DuplicateError{Resource: domain.ResourceVenue, Field: "name", Value: name}
	}
	return nil
}

// mergeInvalid combines the field errors of several checks into one ValidationError.
// Any other error is returned unchanged.
func mergeInvalid(errs ...error) error {
	all := domain.NewValidationError()
	for _, err := range errs {
		if err == nil {
			continue
		}
		verr, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		all.Merge(verr)
	}
	return all.OrNil()
}
