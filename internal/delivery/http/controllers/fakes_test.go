package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	venue *domain.Venue
	page  domain.Page[*domain.Venue]
	err   error

	calls      []string
	lastID     int64
	lastInput  domain.VenueInput
	lastFilter domain.VenueFilter
	lastPage   domain.PageInput
	lastStatus string
}

func (f *fakeVenueService) Create(_ context.Context, in domain.VenueInput) (*domain.Venue, error) {
	f.calls = append(f.calls, "Create")
	f.lastInput = in
	return f.venue, f.err
}

func (f *fakeVenueService) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	f.calls = append(f.calls, "GetByID")
	f.lastID = id
	return f.venue, f.err
}

func (f *fakeVenueService) List(_ context.Context, filter domain.VenueFilter, page domain.PageInput) (domain.Page[*domain.Venue], error) {
	f.calls = append(f.calls, "List")
	f.lastFilter, f.lastPage = filter, page
	return f.page, f.err
}

func (f *fakeVenueService) Update(_ context.Context, id int64, in domain.VenueInput) (*domain.Venue, error) {
	f.calls = append(f.calls, "Update")
	f.lastID, f.lastInput = id, in
	return f.venue, f.err
}

func (f *fakeVenueService) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")
	f.lastID = id
	return f.err
}

func (f *fakeVenueService) ChangeStatus(_ context.Context, id int64, target string) (*domain.Venue, error) {
	f.calls = append(f.calls, "ChangeStatus")
	f.lastID, f.lastStatus = id, target
	return f.venue, f.err
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event *domain.Event
	page  domain.Page[*domain.Event]
	err   error

	calls      []string
	lastID     int64
	lastInput  domain.EventInput
	lastFilter domain.EventFilter
	lastPage   domain.PageInput
	lastStatus string
}

func (f *fakeEventService) Create(_ context.Context, in domain.EventInput) (*domain.Event, error) {
	f.calls = append(f.calls, "Create")
	f.lastInput = in
	return f.event, f.err
}

func (f *fakeEventService) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	f.calls = append(f.calls, "GetByID")
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) List(_ context.Context, filter domain.EventFilter, page domain.PageInput) (domain.Page[*domain.Event], error) {
	f.calls = append(f.calls, "List")
	f.lastFilter, f.lastPage = filter, page
	return f.page, f.err
}

func (f *fakeEventService) ListByVenue(_ context.Context, venueID int64, page domain.PageInput) (domain.Page[*domain.Event], error) {
	f.calls = append(f.calls, "ListByVenue")
	f.lastID, f.lastPage = venueID, page
	return f.page, f.err
}

func (f *fakeEventService) Update(_ context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	f.calls = append(f.calls, "Update")
	f.lastID, f.lastInput = id, in
	return f.event, f.err
}

func (f *fakeEventService) Delete(_ context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")
	f.lastID = id
	return f.err
}

func (f *fakeEventService) ChangeStatus(_ context.Context, id int64, target string) (*domain.Event, error) {
	f.calls = append(f.calls, "ChangeStatus")
	f.lastID, f.lastStatus = id, target
	return f.event, f.err
}

func (f *fakeEventService) Cancel(_ context.Context, id int64) (*domain.Event, error) {
	f.calls = append(f.calls, "Cancel")
	f.lastID = id
	return f.event, f.err
}

func (f *fakeEventService) Complete(_ context.Context, id int64) (*domain.Event, error) {
	f.calls = append(f.calls, "Complete")
	f.lastID = id
	return f.event, f.err
}

// envelope decodes the response body into the standard envelope with raw data.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}
