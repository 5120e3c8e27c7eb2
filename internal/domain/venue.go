package domain

import (
	"context"
	"strings"
	"time"
)

// VenueStatus is the lifecycle state of a Venue.
type VenueStatus string

const (
	VenueActive      VenueStatus = "ACTIVE"
	VenueInactive    VenueStatus = "INACTIVE"
	VenueMaintenance VenueStatus = "MAINTENANCE"
)

// VenueStatuses lists every valid venue status.
var VenueStatuses = []VenueStatus{VenueActive, VenueInactive, VenueMaintenance}

// ParseVenueStatus converts s case-insensitively. ok is false for unknown values.
func ParseVenueStatus(s string) (VenueStatus, bool) {
	st := VenueStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range VenueStatuses {
		if st == v {
			return st, true
		}
	}
	return "", false
}

// Venue is a place that hosts events.
// swagger:model Venue
type Venue struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	City        string      `json:"city,omitempty"`
	Country     string      `json:"country,omitempty"`
	Capacity    int         `json:"capacity"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
	Status      VenueStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewVenue builds a Venue from input with the default ACTIVE status unless input sets one.
// ID is assigned by the repository on save.
func NewVenue(in VenueInput, now time.Time) *Venue {
	v := &Venue{Status: VenueActive, CreatedAt: now, UpdatedAt: now}
	v.apply(in)
	if st, ok := ParseVenueStatus(in.Status); ok {
		v.Status = st
	}
	return v
}

// apply copies the mutable attributes of in. Status is handled by the state machine.
func (v *Venue) apply(in VenueInput) {
	v.Name = strings.TrimSpace(in.Name)
	v.Address = in.Address
	v.City = in.City
	v.Country = in.Country
	v.Capacity = in.Capacity
	v.Type = in.Type
	v.Description = in.Description
	v.Phone = in.Phone
	v.Email = in.Email
}

// Apply merges in into v, keeping ID, status and CreatedAt, and stamps UpdatedAt.
func (v *Venue) Apply(in VenueInput, now time.Time) {
	v.apply(in)
	v.UpdatedAt = now
}

func (v *Venue) IsActive() bool { return v.Status == VenueActive }

// CanHostEvents reports whether new events may be scheduled at the venue.
func (v *Venue) CanHostEvents() bool { return v.IsActive() }

// PutInMaintenance moves an ACTIVE venue to MAINTENANCE.
func (v *Venue) PutInMaintenance(now time.Time) error {
	if !v.IsActive() {
		return v.transitionError(VenueMaintenance)
	}
	v.Status = VenueMaintenance
	v.UpdatedAt = now
	return nil
}

// Activate and Deactivate leave a venue already in the target status untouched.
func (v *Venue) Activate(now time.Time) {
	if v.Status == VenueActive {
		return
	}
	v.Status = VenueActive
	v.UpdatedAt = now
}

func (v *Venue) Deactivate(now time.Time) {
	if v.Status == VenueInactive {
		return
	}
	v.Status = VenueInactive
	v.UpdatedAt = now
}

// TransitionTo applies the venue state machine. ACTIVE and INACTIVE are reachable
// from any state; MAINTENANCE only from ACTIVE.
func (v *Venue) TransitionTo(target VenueStatus, now time.Time) error {
	switch target {
	case VenueActive:
		v.Activate(now)
	case VenueInactive:
		v.Deactivate(now)
	case VenueMaintenance:
		return v.PutInMaintenance(now)
	default:
		return InvalidField("status", "must be one of ACTIVE, INACTIVE, MAINTENANCE")
	}
	return nil
}

func (v *Venue) transitionError(to VenueStatus) error {
	return &StateTransitionError{Resource: ResourceVenue, ID: v.ID, From: string(v.Status), To: string(to)}
}

// FieldValue implements Record.
func (v *Venue) FieldValue(field string) (any, bool) {
	switch field {
	case FieldID:
		return v.ID, true
	case FieldName:
		return v.Name, true
	case FieldCity:
		return v.City, true
	case FieldCountry:
		return v.Country, true
	case FieldStatus:
		return string(v.Status), true
	case FieldCapacity:
		return v.Capacity, true
	case FieldCreatedAt:
		return v.CreatedAt, true
	case FieldUpdatedAt:
		return v.UpdatedAt, true
	}
	return nil, false
}

// Clone returns a copy of v.
func (v *Venue) Clone() *Venue {
	c := *v
	return &c
}

// VenueInput carries the client-supplied attributes of a venue for create and update.
type VenueInput struct {
	Name        string `json:"name" validate:"required,min=3,max=200"`
	Address     string `json:"address" validate:"max=300"`
	City        string `json:"city" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
	Type        string `json:"type" validate:"max=50"`
	Description string `json:"description" validate:"max=500"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Status      string `json:"status,omitempty" validate:"omitempty,venue_status"`
}

// VenueFilter holds the optional venue list filters. Zero values are ignored.
type VenueFilter struct {
	City        string
	Country     string
	Status      string
	MinCapacity *int
}

// VenueRepository is the storage contract for venues.
type VenueRepository interface {
	// Save inserts v when v.ID is zero, otherwise updates it, and returns the stored copy.
	Save(ctx context.Context, v *Venue) (*Venue, error)
	FindByID(ctx context.Context, id int64) (*Venue, error)
	FindAll(ctx context.Context, page PageRequest) (Page[*Venue], error)
	FindFiltered(ctx context.Context, pred Predicate, page PageRequest) (Page[*Venue], error)
	// ExistsByName reports whether another venue (id != excludeID) has exactly name.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// DeleteByID removes the venue and its events.
	DeleteByID(ctx context.Context, id int64) error
}

// VenueService is the lifecycle facade for venues.
type VenueService interface {
	Create(ctx context.Context, in VenueInput) (*Venue, error)
	GetByID(ctx context.Context, id int64) (*Venue, error)
	List(ctx context.Context, filter VenueFilter, page PageInput) (Page[*Venue], error)
	Update(ctx context.Context, id int64, in VenueInput) (*Venue, error)
	Delete(ctx context.Context, id int64) error
	ChangeStatus(ctx context.Context, id int64, target string) (*Venue, error)
}
