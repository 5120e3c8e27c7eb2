package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVenueStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   VenueStatus
		wantOK bool
	}{
		{"ACTIVE", VenueActive, true},
		{"maintenance", VenueMaintenance, true},
		{" Inactive ", VenueInactive, true},
		{"closed", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVenueStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewVenue_defaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := NewVenue(VenueInput{Name: "  Teatro X ", Capacity: 100}, now)

	assert.Equal(t, "Teatro X", v.Name)
	assert.Equal(t, VenueActive, v.Status)
	assert.Equal(t, now, v.CreatedAt)
	assert.Equal(t, now, v.UpdatedAt)
	assert.True(t, v.CanHostEvents())

	v = NewVenue(VenueInput{Name: "Arena", Capacity: 10, Status: "inactive"}, now)
	assert.Equal(t, VenueInactive, v.Status)
	assert.False(t, v.CanHostEvents())
}

func TestVenue_TransitionTo(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		from    VenueStatus
		to      VenueStatus
		wantErr error
	}{
		{"active to maintenance", VenueActive, VenueMaintenance, nil},
		{"inactive to maintenance", VenueInactive, VenueMaintenance, ErrInvalidStateTransition},
		{"maintenance to maintenance", VenueMaintenance, VenueMaintenance, ErrInvalidStateTransition},
		{"active to inactive", VenueActive, VenueInactive, nil},
		{"maintenance to active", VenueMaintenance, VenueActive, nil},
		{"inactive to active", VenueInactive, VenueActive, nil},
		{"maintenance to inactive", VenueMaintenance, VenueInactive, nil},
		{"unknown target", VenueActive, VenueStatus("CLOSED"), ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Venue{ID: 7, Status: tt.from}
			err := v.TransitionTo(tt.to, now)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, tt.from, v.Status, "status unchanged on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, v.Status)
			assert.Equal(t, now, v.UpdatedAt)
		})
	}
}

func TestVenue_TransitionTo_current_status_keeps_timestamp(t *testing.T) {
	stamped := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, status := range []VenueStatus{VenueActive, VenueInactive} {
		v := &Venue{ID: 7, Status: status, UpdatedAt: stamped}
		require.NoError(t, v.TransitionTo(status, stamped.Add(time.Hour)))
		assert.Equal(t, status, v.Status)
		assert.Equal(t, stamped, v.UpdatedAt)
	}
}

func TestVenue_TransitionError_details(t *testing.T) {
	v := &Venue{ID: 3, Status: VenueInactive}
	err := v.PutInMaintenance(time.Now())

	var ste *StateTransitionError
	require.ErrorAs(t, err, &ste)
	assert.Equal(t, ResourceVenue, ste.Resource)
	assert.Equal(t, int64(3), ste.ID)
	assert.Equal(t, "INACTIVE", ste.From)
	assert.Equal(t, "MAINTENANCE", ste.To)
}

func TestVenue_Apply_keeps_identity(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := &Venue{ID: 4, Name: "Old", Status: VenueMaintenance, CreatedAt: created, UpdatedAt: created}
	later := created.Add(time.Hour)

	v.Apply(VenueInput{Name: "New", City: "Madrid", Capacity: 5, Status: "ACTIVE"}, later)

	assert.Equal(t, int64(4), v.ID)
	assert.Equal(t, "New", v.Name)
	assert.Equal(t, "Madrid", v.City)
	assert.Equal(t, VenueMaintenance, v.Status)
	assert.Equal(t, created, v.CreatedAt)
	assert.Equal(t, later, v.UpdatedAt)
}
