package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus is the lifecycle state of an Event.
type EventStatus string

const (
	EventScheduled EventStatus = "SCHEDULED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

// EventStatuses lists every valid event status.
var EventStatuses = []EventStatus{EventScheduled, EventCancelled, EventCompleted}

// ParseEventStatus converts s case-insensitively. "ACTIVE" is accepted as SCHEDULED.
func ParseEventStatus(s string) (EventStatus, bool) {
	st := EventStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st == "ACTIVE" {
		return EventScheduled, true
	}
	for _, v := range EventStatuses {
		if st == v {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no transition leaves s.
func (s EventStatus) IsTerminal() bool {
	return s == EventCancelled || s == EventCompleted
}

// Event is a scheduled happening at a Venue.
// swagger:model Event
type Event struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	EventDate   time.Time       `json:"eventDate"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	VenueID     int64           `json:"venueId"`
	VenueName   string          `json:"venueName"`
	Capacity    int             `json:"capacity"`
	TicketPrice decimal.Decimal `json:"ticketPrice" swaggertype:"string"`
	Category    string          `json:"category,omitempty"`
	Status      EventStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewEvent builds a SCHEDULED Event held at venue. ID is assigned by the repository on save.
func NewEvent(in EventInput, venue *Venue, now time.Time) *Event {
	e := &Event{Status: EventScheduled, CreatedAt: now, UpdatedAt: now}
	e.apply(in)
	e.AssignVenue(venue)
	return e
}

func (e *Event) apply(in EventInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.Description = in.Description
	if in.EventDate != nil {
		e.EventDate = *in.EventDate
	}
	e.EndDate = in.EndDate
	e.Capacity = in.Capacity
	e.TicketPrice = in.TicketPrice
	e.Category = in.Category
}

// Apply merges in into e, keeping ID, venue, status and CreatedAt, and stamps UpdatedAt.
func (e *Event) Apply(in EventInput, now time.Time) {
	e.apply(in)
	e.UpdatedAt = now
}

// AssignVenue points e at venue and refreshes the cached venue name.
func (e *Event) AssignVenue(venue *Venue) {
	e.VenueID = venue.ID
	e.VenueName = venue.Name
}

func (e *Event) IsActive() bool { return e.Status == EventScheduled }

// IsUpcoming reports whether the event starts strictly after now.
func (e *Event) IsUpcoming(now time.Time) bool { return e.EventDate.After(now) }

func (e *Event) CanBeCancelled(now time.Time) bool { return e.IsActive() && e.IsUpcoming(now) }

// Cancel moves an active, upcoming event to CANCELLED.
func (e *Event) Cancel(now time.Time) error {
	if !e.CanBeCancelled(now) {
		return e.transitionError(EventCancelled)
	}
	e.Status = EventCancelled
	e.UpdatedAt = now
	return nil
}

// Complete moves an active event to COMPLETED.
func (e *Event) Complete(now time.Time) error {
	if !e.IsActive() {
		return e.transitionError(EventCompleted)
	}
	e.Status = EventCompleted
	e.UpdatedAt = now
	return nil
}

// TransitionTo applies the event state machine. CANCELLED and COMPLETED are terminal;
// SCHEDULED to SCHEDULED is a no-op.
func (e *Event) TransitionTo(target EventStatus, now time.Time) error {
	switch target {
	case EventScheduled:
		if e.Status != EventScheduled {
			return e.transitionError(target)
		}
		return nil
	case EventCancelled:
		return e.Cancel(now)
	case EventCompleted:
		return e.Complete(now)
	}
	return InvalidField("status", "must be one of SCHEDULED, ACTIVE, CANCELLED, COMPLETED")
}

func (e *Event) transitionError(to EventStatus) error {
	return &StateTransitionError{Resource: ResourceEvent, ID: e.ID, From: string(e.Status), To: string(to)}
}

// FieldValue implements Record. Venue attributes are not known to the event itself.
func (e *Event) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return e.ID, true
	case FieldName:
		return e.Name, true
	case FieldStatus:
		return string(e.Status), true
	case FieldCategory:
		return e.Category, true
	case FieldVenueID:
		return e.VenueID, true
	case FieldCapacity:
		return e.Capacity, true
	case FieldEventDate:
		return e.EventDate, true
	case FieldEndDate:
		if e.EndDate == nil {
			return nil, false
		}
		return *e.EndDate, true
	case FieldTicketPrice:
		return e.TicketPrice, true
	case FieldCreatedAt:
		return e.CreatedAt, true
	case FieldUpdatedAt:
		return e.UpdatedAt, true
	}
	return nil, false
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	c := *e
	if e.EndDate != nil {
		end := *e.EndDate
		c.EndDate = &end
	}
	return &c
}

// EventInput carries the client-supplied attributes of an event for create and update.
type EventInput struct {
	Name        string          `json:"name" validate:"required,min=3,max=200"`
	Description string          `json:"description" validate:"required,min=10,max=1000"`
	EventDate   *time.Time      `json:"eventDate" validate:"required"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	VenueID     int64           `json:"venueId" validate:"required,gt=0"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	TicketPrice decimal.Decimal `json:"ticketPrice" validate:"-" swaggertype:"string"`
	Category    string          `json:"category" validate:"max=100"`
	Status      string          `json:"status,omitempty" validate:"omitempty,event_status"`
}

// EventFilter holds the optional event list filters. Zero values are ignored.
type EventFilter struct {
	VenueID  *int64
	Status   string
	Category string
	City     string
	Country  string
	From     *time.Time
	To       *time.Time
}

// EventRepository is the storage contract for events.
type EventRepository interface {
	// Save inserts e when e.ID is zero, otherwise updates it, and returns the stored copy.
	Save(ctx context.Context, e *Event) (*Event, error)
	FindByID(ctx context.Context, id int64) (*Event, error)
	FindAll(ctx context.Context, page PageRequest) (Page[*Event], error)
	FindFiltered(ctx context.Context, pred Predicate, page PageRequest) (Page[*Event], error)
	// ExistsByName reports whether another event (id != excludeID) has exactly name.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventService is the lifecycle facade for events.
type EventService interface {
	Create(ctx context.Context, in EventInput) (*Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter, page PageInput) (Page[*Event], error)
	ListByVenue(ctx context.Context, venueID int64, page PageInput) (Page[*Event], error)
	Update(ctx context.Context, id int64, in EventInput) (*Event, error)
	Delete(ctx context.Context, id int64) error
	ChangeStatus(ctx context.Context, id int64, target string) (*Event, error)
	Cancel(ctx context.Context, id int64) (*Event, error)
	Complete(ctx context.Context, id int64) (*Event, error)
}
