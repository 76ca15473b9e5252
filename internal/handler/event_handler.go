package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/middleware"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// GetAll retrieves all events with optional filters and pagination
// @Summary      Get all events
// @Description  Get a paginated list of plogging events
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        search    query    string  false  "Search by name or location"
// @Param        status    query    string  false  "Filter by status (upcoming, ongoing, completed, cancelled)"
// @Param        page      query    int     false  "Page number (default 1)"
// @Param        per_page  query    int     false  "Items per page (default 10)"
// @Security     BearerAuth
// @Success      200  {object}  response.PaginatedResponse
// @Failure      500  {object}  response.Response
// @Router       /events [get]
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.EventFilter{
		Search:  q.Get("search"),
		Status:  q.Get("status"),
		Page:    parseIntQuery(q.Get("page"), 1),
		PerPage: parseIntQuery(q.Get("per_page"), 10),
	}

	events, pagination, err := h.svc.GetAll(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "Failed to retrieve events")
		return
	}

	response.Paginated(w, "Events retrieved successfully", events, pagination)
}

// GetByID retrieves a single event
// @Summary      Get event by ID
// @Description  Get detailed information about an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to retrieve event")
		return
	}

	response.Success(w, "Event retrieved successfully", event)
}

// Create adds a new event
// @Summary      Create an event
// @Description  Create a new plogging event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateEventRequest  true  "Event creation request"
// @Security     BearerAuth
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	req.Name = utils.SanitizeString(req.Name)
	if req.Name == "" {
		errs["name"] = "Event name is required"
	}
	if req.StartsAt == "" {
		errs["starts_at"] = "Start time is required"
	}
	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	createdBy := middleware.GetUserIDFromContext(r.Context())
	event, err := h.svc.Create(r.Context(), req, createdBy)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Event created successfully", event)
}

// Update modifies an existing event
// @Summary      Update an event
// @Description  Update details or status of an existing event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Event ID"
// @Param        request  body      model.UpdateEventRequest  true  "Event update request"
// @Security     BearerAuth
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /events/{id} [put]
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateEventRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	event, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Event updated successfully", event)
}

// Delete removes an event
// @Summary      Delete an event
// @Description  Delete an event and its attendance records
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete event")
		return
	}

	response.Success(w, "Event deleted successfully", nil)
}

// Enroll registers a volunteer for an event
// @Summary      Enroll a volunteer
// @Description  Enroll a volunteer in an event, subject to capacity
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Event ID"
// @Param        request  body      model.EnrollRequest  true  "Enrollment request"
// @Security     BearerAuth
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /events/{id}/enroll [post]
func (h *EventHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.EnrollRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}
	if req.VolunteerID == "" {
		response.BadRequest(w, "Validation failed", utils.ValidationErrors{"volunteer_id": "Volunteer ID is required"})
		return
	}

	attendance, err := h.svc.Enroll(r.Context(), id, req.VolunteerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrVolunteerNotFound):
			response.NotFound(w, err.Error())
		default:
			response.BadRequest(w, err.Error(), nil)
		}
		return
	}

	response.Created(w, "Volunteer enrolled successfully", attendance)
}

// CheckIn marks an enrolled volunteer as present
// @Summary      Check in a volunteer
// @Description  Mark an enrolled volunteer as checked in; hours start accruing from this moment
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Event ID"
// @Param        request  body      model.EnrollRequest  true  "Check-in request"
// @Security     BearerAuth
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /events/{id}/check-in [post]
func (h *EventHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.EnrollRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	attendance, err := h.svc.CheckIn(r.Context(), id, req.VolunteerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(w, err.Error())
		default:
			response.BadRequest(w, err.Error(), nil)
		}
		return
	}

	response.Success(w, "Volunteer checked in", attendance)
}

// CheckOut closes a volunteer's attendance and computes their hours
// @Summary      Check out a volunteer
// @Description  Mark a checked-in volunteer as checked out and record their contributed hours and distance
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id            path      string                 true  "Event ID"
// @Param        volunteerId   path      string                 true  "Volunteer ID"
// @Param        request       body      model.CheckOutRequest  true  "Check-out request"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /events/{id}/check-out/{volunteerId} [post]
func (h *EventHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	volunteerID := chi.URLParam(r, "volunteerId")

	var req model.CheckOutRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	attendance, err := h.svc.CheckOut(r.Context(), id, volunteerID, req.DistanceKM)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(w, err.Error())
		default:
			response.BadRequest(w, err.Error(), nil)
		}
		return
	}

	response.Success(w, "Volunteer checked out", attendance)
}

// Attendance lists attendance records for an event
// @Summary      List event attendance
// @Description  Get the attendance list of an event, optionally filtered by status
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id      path      string  true   "Event ID"
// @Param        status  query     string  false  "Filter by status (enrolled, checked_in, checked_out)"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /events/{id}/attendance [get]
func (h *EventHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := r.URL.Query().Get("status")

	records, err := h.svc.Attendance(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to retrieve attendance")
		return
	}

	response.Success(w, "Attendance retrieved successfully", records)
}
