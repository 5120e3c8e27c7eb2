package controllers

import (
	"log/slog"
	"net/http"

	h "eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
)

// EventSuccessResponse is the success envelope carrying one event.
type EventSuccessResponse struct {
	Data  *domain.Event `json:"data"`
	Error *h.APIError   `json:"error"`
}

// EventPageSuccessResponse is the success envelope carrying a page of events.
type EventPageSuccessResponse struct {
	Data  domain.Page[*domain.Event] `json:"data"`
	Error *h.APIError                `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Schedules an event at an ACTIVE venue. The event date must not be in the past; venueName is copied from the venue.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventInput true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, error.details maps fields to problems"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (venue)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req domain.EventInput
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), req)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Description Paged event listing. Filters combine with AND; city and country refer to the event's venue. from and to bound eventDate inclusively.
// @Tags events
// @Produce json
// @Param venueId query int false "Venue ID"
// @Param status query string false "SCHEDULED (or ACTIVE), CANCELLED or COMPLETED"
// @Param category query string false "Category"
// @Param city query string false "Venue city"
// @Param country query string false "Venue country"
// @Param from query string false "Earliest eventDate (RFC 3339; a + offset may be sent unescaped)"
// @Param to query string false "Latest eventDate (RFC 3339; a + offset may be sent unescaped)"
// @Param page query int false "0-based page" default(0)
// @Param size query int false "Page size" default(10)
// @Param sort query string false "Sort field" default(id)
// @Param direction query string false "asc or desc" default(asc)
// @Success 200 {object} controllers.EventPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := h.NewQuery(r)
	filter := domain.EventFilter{
		VenueID:  q.Int64("venueId"),
		Status:   q.String("status"),
		Category: q.String("category"),
		City:     q.String("city"),
		Country:  q.String("country"),
		From:     q.Time("from"),
		To:       q.Time("to"),
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

// ListVenueEvents godoc
// @Summary List the events of a venue
// @Tags events
// @Produce json
// @Param id path int true "Venue ID"
// @Param page query int false "0-based page" default(0)
// @Param size query int false "Page size" default(10)
// @Param sort query string false "Sort field" default(id)
// @Param direction query string false "asc or desc" default(asc)
// @Success 200 {object} controllers.EventPageSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (venue)"
// @Router /venues/{id}/events [get]
func (c *EventController) ListVenueEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	q := h.NewQuery(r)
	page := q.Page()
	if verr := q.Err(); verr != nil {
		h.WriteValidationError(w, verr)
		return
	}
	result, err := c.Service.ListByVenue(r.Context(), id, page)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateEvent godoc
// @Summary Replace an event
// @Description Replaces every attribute. Moving the event date requires a present or future date; a new venue must be ACTIVE.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body domain.EventInput true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict or invalid_state_transition"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	var req domain.EventInput
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), id, req)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
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

// ChangeEventStatus godoc
// @Summary Change an event's status
// @Description CANCELLED and COMPLETED are terminal.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body StatusRequest true "Target status"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state_transition"
// @Router /events/{id}/status [post]
func (c *EventController) ChangeEventStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// CancelEvent godoc
// @Summary Cancel an event
// @Description Only a SCHEDULED event that has not started yet can be cancelled.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state_transition"
// @Router /events/{id}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.Cancel(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// CompleteEvent godoc
// @Summary Complete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state_transition"
// @Router /events/{id}/complete [post]
func (c *EventController) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ParseID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.Complete(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}
