package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
)

// StatusRequest is the request body of the status change endpoints.
type StatusRequest struct {
	Status string `json:"status" example:"MAINTENANCE"`
}

// Validate implements Validator.
func (s StatusRequest) Validate() []string {
	if strings.TrimSpace(s.Status) == "" {
		return []string{"status is required"}
	}
	return nil
}

// VenueSuccessResponse is the success envelope carrying one venue.
type VenueSuccessResponse struct {
	Data  *domain.Venue `json:"data"`
	Error *h.APIError   `json:"error"`
}

// VenuePageSuccessResponse is the success envelope carrying a page of venues.
type VenuePageSuccessResponse struct {
	Data  domain.Page[*domain.Venue] `json:"data"`
	Error *h.APIError                `json:"error"`
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue. Status defaults to ACTIVE. Names are unique.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body domain.VenueInput true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, error.details maps fields to problems"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req domain.VenueInput
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Create(r.Context(), req)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// GetVenue godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Param id path int true "Venue ID"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{id} [get]
func (c *VenueController) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	venue, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// ListVenues godoc
// @Summary List venues
// @Description Paged venue listing. All filters are optional and combine with AND; city, country and status ignore case.
// @Tags venues
// @Produce json
// @Param city query string false "City"
// @Param country query string false "Country"
// @Param status query string false "ACTIVE, INACTIVE or MAINTENANCE"
// @Param minCapacity query int false "Minimum capacity"
// @Param page query int false "0-based page" default(0)
// @Param size query int false "Page size" default(10)
// @Param sort query string false "Sort field" default(id)
// @Param direction query string false "asc or desc" default(asc)
// @Success 200 {object} controllers.VenuePageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	q := h.NewQuery(r)
	filter := domain.VenueFilter{
		City:        q.String("city"),
		Country:     q.String("country"),
		Status:      q.String("status"),
		MinCapacity: q.Int("minCapacity"),
	}
	page := q.Page()
	if verr := q.Err(); verr != nil {
		h.WriteValidationError(w, verr)
		return
	}
	result, err := c.Service.List(r.Context(), filter, page)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateVenue godoc
// @Summary Replace a venue
// @Description Replaces every attribute. A status different from the current one goes through the venue state machine.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Param venue body domain.VenueInput true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict or invalid_state_transition"
// @Router /venues/{id} [put]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.VenueInput
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.Update(r.Context(), id, req)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Description Deletes the venue and every event held at it.
// @Tags venues
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /venues/{id} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeVenueStatus godoc
// @Summary Change a venue's status
// @Description ACTIVE, INACTIVE and MAINTENANCE; only an ACTIVE venue can be put in maintenance.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Param body body StatusRequest true "Target status"
// @Success 200 {object} controllers.VenueSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state_transition"
// @Router /venues/{id}/status [post]
func (c *VenueController) ChangeVenueStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, venue)
}
