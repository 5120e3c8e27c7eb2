package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
)

// serve routes a single request through a mux holding pattern, so path values resolve.
func serve(pattern string, handler http.HandlerFunc, method, target string, body io.Reader) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, handler)
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestVenueController_CreateVenue(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeVenueService
		wantStatus  int
		wantCode    string
		wantCreated bool
	}{
		{
			name:        "created",
			body:        `{"name":"Teatro X","capacity":100,"city":"Madrid"}`,
			svc:         &fakeVenueService{venue: &domain.Venue{ID: 1, Name: "Teatro X", Capacity: 100, Status: domain.VenueActive}},
			wantStatus:  http.StatusCreated,
			wantCreated: true,
		},
		{
			name:       "unknown field",
			body:       `{"name":"Teatro X","capacity":100,"seats":3}`,
			svc:        &fakeVenueService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "empty body",
			body:       ``,
			svc:        &fakeVenueService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "field errors",
			body:       `{"name":"X","capacity":0}`,
			svc:        &fakeVenueService{err: &domain.ValidationError{Fields: map[string]string{"name": "must be at least 3 characters", "capacity": "is required"}}},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate name",
			body:       `{"name":"Teatro X","capacity":100}`,
			svc:        &fakeVenueService{err: &domain.DuplicateError{Resource: "venue", Field: "name", Value: "Teatro X"}},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "storage failure",
			body:       `{"name":"Teatro X","capacity":100}`,
			svc:        &fakeVenueService{err: errors.New("db down")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewVenueController(testLogger, tt.svc)
			rr := serve("POST /venues", c.CreateVenue, http.MethodPost, "/venues", strings.NewReader(tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.wantCreated {
				require.Nil(t, env.Error)
				var v domain.Venue
				require.NoError(t, json.Unmarshal(env.Data, &v))
				assert.Equal(t, int64(1), v.ID)
				assert.Equal(t, "Madrid", tt.svc.lastInput.City)
				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestVenueController_CreateVenue_details(t *testing.T) {
	svc := &fakeVenueService{err: &domain.ValidationError{Fields: map[string]string{"capacity": "is required"}}}
	c := NewVenueController(testLogger, svc)

	rr := serve("POST /venues", c.CreateVenue, http.MethodPost, "/venues", strings.NewReader(`{"name":"Teatro X"}`))

	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Equal(t, map[string]string{"capacity": "is required"}, env.Error.Details)
}

func TestVenueController_GetVenue(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		svc        *fakeVenueService
		wantStatus int
		wantCalled bool
	}{
		{"found", "/venues/5", &fakeVenueService{venue: &domain.Venue{ID: 5}}, http.StatusOK, true},
		{"not found", "/venues/5", &fakeVenueService{err: domain.NewNotFound(domain.ResourceVenue, 5)}, http.StatusNotFound, true},
		{"bad id", "/venues/five", &fakeVenueService{}, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewVenueController(testLogger, tt.svc)
			rr := serve("GET /venues/{id}", c.GetVenue, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCalled {
				assert.Equal(t, int64(5), tt.svc.lastID)
			} else {
				assert.Empty(t, tt.svc.calls)
			}
		})
	}
}

func TestVenueController_ListVenues(t *testing.T) {
	svc := &fakeVenueService{page: domain.Page[*domain.Venue]{
		Items:         []*domain.Venue{{ID: 1, Name: "Teatro X"}},
		TotalElements: 11, Page: 1, Size: 10, TotalPages: 2,
	}}
	c := NewVenueController(testLogger, svc)

	rr := serve("GET /venues", c.ListVenues, http.MethodGet,
		"/venues?city=Madrid&status=active&minCapacity=50&page=1&size=10&sort=name&direction=desc", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Madrid", svc.lastFilter.City)
	assert.Equal(t, "active", svc.lastFilter.Status)
	require.NotNil(t, svc.lastFilter.MinCapacity)
	assert.Equal(t, 50, *svc.lastFilter.MinCapacity)
	require.NotNil(t, svc.lastPage.Page)
	assert.Equal(t, 1, *svc.lastPage.Page)
	assert.Equal(t, "name", svc.lastPage.Sort)
	assert.Equal(t, "desc", svc.lastPage.Direction)

	var page domain.Page[*domain.Venue]
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &page))
	assert.Equal(t, 11, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 1)
}

func TestVenueController_ListVenues_bad_query(t *testing.T) {
	svc := &fakeVenueService{}
	c := NewVenueController(testLogger, svc)

	rr := serve("GET /venues", c.ListVenues, http.MethodGet, "/venues?minCapacity=lots&size=x", nil)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "minCapacity")
	assert.Contains(t, env.Error.Details, "size")
	assert.Empty(t, svc.calls)
}

func TestVenueController_UpdateVenue(t *testing.T) {
	svc := &fakeVenueService{venue: &domain.Venue{ID: 3, Name: "Renamed"}}
	c := NewVenueController(testLogger, svc)

	rr := serve("PUT /venues/{id}", c.UpdateVenue, http.MethodPut, "/venues/3",
		strings.NewReader(`{"name":"Renamed","capacity":10,"status":"INACTIVE"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), svc.lastID)
	assert.Equal(t, "INACTIVE", svc.lastInput.Status)
}

func TestVenueController_DeleteVenue(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeVenueService{}
		c := NewVenueController(testLogger, svc)
		rr := serve("DELETE /venues/{id}", c.DeleteVenue, http.MethodDelete, "/venues/9", nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
		assert.Equal(t, int64(9), svc.lastID)
	})
	t.Run("missing", func(t *testing.T) {
		svc := &fakeVenueService{err: domain.NewNotFound(domain.ResourceVenue, 9)}
		c := NewVenueController(testLogger, svc)
		rr := serve("DELETE /venues/{id}", c.DeleteVenue, http.MethodDelete, "/venues/9", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestVenueController_ChangeVenueStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeVenueService
		wantStatus int
		wantCode   string
	}{
		{"changed", `{"status":"MAINTENANCE"}`, &fakeVenueService{venue: &domain.Venue{ID: 2, Status: domain.VenueMaintenance}}, http.StatusOK, ""},
		{"missing status", `{}`, &fakeVenueService{}, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{
			"forbidden transition", `{"status":"MAINTENANCE"}`,
			&fakeVenueService{err: &domain.StateTransitionError{Resource: "venue", ID: 2, From: "INACTIVE", To: "MAINTENANCE"}},
			http.StatusConflict, helpers.ErrCodeInvalidStateTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewVenueController(testLogger, tt.svc)
			rr := serve("POST /venues/{id}/status", c.ChangeVenueStatus, http.MethodPost, "/venues/2/status", strings.NewReader(tt.body))

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			if tt.wantCode == "" {
				assert.Nil(t, env.Error)
				assert.Equal(t, "MAINTENANCE", tt.svc.lastStatus)
				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}
