package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/internal/query"
)

type eventService struct {
	storage        domain.Storage
	pages          *query.Normalizer
	contextTimeout time.Duration
	options
}

// NewEventService returns the event lifecycle service over storage.
func NewEventService(storage domain.Storage, timeout time.Duration, opts ...Option) domain.EventService {
	o := buildOptions(opts)
	return &eventService{
		storage:        storage,
		pages:          query.NewNormalizer(query.EventSortFields, o.maxPageSize),
		contextTimeout: timeout,
		options:        o,
	}
}

// Create schedules a new event at an existing venue that can host events.
func (s *eventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	verr := domain.NewValidationError()
	verr.Merge(s.validator.Event(in))
	if in.EventDate != nil && in.EventDate.Before(now) {
		verr.Add("eventDate", "must be in the present or future")
	}
	if st, ok := domain.ParseEventStatus(in.Status); ok && st != domain.EventScheduled {
		verr.Add("status", "new events start as SCHEDULED")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var saved *domain.Event
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		venue, err := hostingVenue(ctx, tx, in.VenueID)
		if err != nil {
			return err
		}
		event := domain.NewEvent(in, venue, now)
		if err := ensureEventNameFree(ctx, tx, event.Name, 0); err != nil {
			return err
		}
		saved, err = tx.Events().Save(ctx, event)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", saved.ID, "venue_id", saved.VenueID)
	return saved, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	e, err := s.storage.Events().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, page domain.PageInput) (domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.list(ctx, filter, page)
}

// ListByVenue lists the events of one venue; the venue itself must exist.
func (s *eventService) ListByVenue(ctx context.Context, venueID int64, page domain.PageInput) (domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.storage.Venues().ExistsByID(ctx, venueID)
	if err != nil {
		return domain.Page[*domain.Event]{}, fmt.Errorf("list venue events: %w", err)
	}
	if !ok {
		return domain.Page[*domain.Event]{}, domain.NewNotFound(domain.ResourceVenue, venueID)
	}
	return s.list(ctx, domain.EventFilter{VenueID: &venueID}, page)
}

func (s *eventService) list(ctx context.Context, filter domain.EventFilter, page domain.PageInput) (domain.Page[*domain.Event], error) {
	pred, ferr := query.ComposeEventFilter(filter)
	req, perr := s.pages.Normalize(page)
	if err := mergeInvalid(ferr, perr); err != nil {
		return domain.Page[*domain.Event]{}, err
	}

	var (
		result domain.Page[*domain.Event]
		err    error
	)
	if pred.IsEmpty() {
		result, err = s.storage.Events().FindAll(ctx, req)
	} else {
		result, err = s.storage.Events().FindFiltered(ctx, pred, req)
	}
	if err != nil {
		return domain.Page[*domain.Event]{}, fmt.Errorf("list events: %w", err)
	}
	return result, nil
}

// Update replaces the event's attributes. A new venue must exist and be able to host
// events; a moved event date must not be in the past.
func (s *eventService) Update(ctx context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if verr := s.validator.Event(in); verr != nil {
		return nil, verr
	}

	now := s.now()
	var (
		saved      *domain.Event
		transition bool
	)
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		event, err := tx.Events().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !in.EventDate.Equal(event.EventDate) && in.EventDate.Before(now) {
			return domain.InvalidField("eventDate", "must be in the present or future")
		}
		if name := strings.TrimSpace(in.Name); name != event.Name {
			if err := ensureEventNameFree(ctx, tx, name, id); err != nil {
				return err
			}
		}
		if in.VenueID != event.VenueID {
			venue, err := hostingVenue(ctx, tx, in.VenueID)
			if err != nil {
				return err
			}
			event.AssignVenue(venue)
		}
		event.Apply(in, now)
		if target, ok := domain.ParseEventStatus(in.Status); ok && target != event.Status {
			if err := event.TransitionTo(target, now); err != nil {
				return err
			}
			transition = true
		}
		saved, err = tx.Events().Save(ctx, event)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if transition {
		s.recorder.RecordTransition(domain.ResourceEvent, string(saved.Status))
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", saved.ID)
	return saved, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.storage.Events().DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}

func (s *eventService) ChangeStatus(ctx context.Context, id int64, target string) (*domain.Event, error) {
	status, ok := domain.ParseEventStatus(target)
	if !ok {
		return nil, domain.InvalidField("status", "must be one of SCHEDULED, ACTIVE, CANCELLED, COMPLETED")
	}
	return s.transition(ctx, id, status)
}

func (s *eventService) Cancel(ctx context.Context, id int64) (*domain.Event, error) {
	return s.transition(ctx, id, domain.EventCancelled)
}

func (s *eventService) Complete(ctx context.Context, id int64) (*domain.Event, error) {
	return s.transition(ctx, id, domain.EventCompleted)
}

func (s *eventService) transition(ctx context.Context, id int64, target domain.EventStatus) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		saved   *domain.Event
		changed bool
	)
	err := s.storage.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		event, err := tx.Events().FindByID(ctx, id)
		if err != nil {
			return err
		}
		from := event.Status
		if err := event.TransitionTo(target, s.now()); err != nil {
			return err
		}
		if event.Status == from {
			saved = event
			return nil
		}
		changed = true
		saved, err = tx.Events().Save(ctx, event)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("change event status: %w", err)
	}
	if !changed {
		return saved, nil
	}
	s.recorder.RecordTransition(domain.ResourceEvent, string(saved.Status))
	s.logger.InfoContext(ctx, "event status changed", "event_id", saved.ID, "status", saved.Status)
	return saved, nil
}

// hostingVenue loads the venue an event is placed at and checks it accepts events.
func hostingVenue(ctx context.Context, tx domain.Storage, venueID int64) (*domain.Venue, error) {
	venue, err := tx.Venues().FindByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !venue.CanHostEvents() {
		return nil, domain.InvalidField("venueId", fmt.Sprintf("venue %d is %s and cannot host events", venue.ID, venue.Status))
	}
	return venue, nil
}

func ensureEventNameFree(ctx context.Context, tx domain.Storage, name string, excludeID int64) error {
	taken, err := tx.Events().ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("check event name: %w", err)
	}
	if taken {
		return &domain.DuplicateError{Resource: domain.ResourceEvent, Field: "name", Value: name}
	}
	return nil
}
