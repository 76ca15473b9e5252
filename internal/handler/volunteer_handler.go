package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

type VolunteerHandler struct {
	svc service.VolunteerService
}

func NewVolunteerHandler(svc service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

// GetAll retrieves all volunteers with optional filters and pagination
// @Summary      Get all volunteers
// @Description  Get a paginated list of volunteers
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        search    query    string  false  "Search by name or email"
// @Param        city      query    string  false  "Filter by city"
// @Param        page      query    int     false  "Page number (default 1)"
// @Param        per_page  query    int     false  "Items per page (default 10)"
// @Security     BearerAuth
// @Success      200  {object}  response.PaginatedResponse
// @Failure      500  {object}  response.Response
// @Router       /volunteers [get]
func (h *VolunteerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.VolunteerFilter{
		Search:  q.Get("search"),
		City:    q.Get("city"),
		Page:    parseIntQuery(q.Get("page"), 1),
		PerPage: parseIntQuery(q.Get("per_page"), 10),
	}

	volunteers, pagination, err := h.svc.GetAll(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "Failed to retrieve volunteers")
		return
	}

	response.Paginated(w, "Volunteers retrieved successfully", volunteers, pagination)
}

// GetByID retrieves a volunteer with their contribution totals
// @Summary      Get volunteer by ID
// @Description  Get detailed information about a volunteer, including total hours, events and distance
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Volunteer ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /volunteers/{id} [get]
func (h *VolunteerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	volunteer, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to retrieve volunteer")
		return
	}

	response.Success(w, "Volunteer retrieved successfully", volunteer)
}

// Create registers a new volunteer
// @Summary      Create a volunteer
// @Description  Register a new volunteer
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateVolunteerRequest  true  "Volunteer creation request"
// @Security     BearerAuth
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /volunteers [post]
func (h *VolunteerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVolunteerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	req.FullName = utils.SanitizeString(req.FullName)
	req.Email = utils.SanitizeString(strings.ToLower(req.Email))

	if req.FullName == "" {
		errs["full_name"] = "Full name is required"
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		errs["email"] = "Invalid email format"
	}

	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	volunteer, err := h.svc.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.InternalError(w, "Failed to create volunteer")
		return
	}

	response.Created(w, "Volunteer created successfully", volunteer)
}

// Update modifies an existing volunteer
// @Summary      Update a volunteer
// @Description  Update details of an existing volunteer
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Volunteer ID"
// @Param        request  body      model.UpdateVolunteerRequest  true  "Volunteer update request"
// @Security     BearerAuth
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /volunteers/{id} [put]
func (h *VolunteerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateVolunteerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	req.FullName = utils.SanitizeString(req.FullName)
	if req.FullName == "" {
		errs["full_name"] = "Full name is required"
	}
	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	volunteer, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update volunteer")
		return
	}

	response.Success(w, "Volunteer updated successfully", volunteer)
}

// Delete deactivates a volunteer
// @Summary      Delete a volunteer
// @Description  Soft-delete a volunteer record
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Volunteer ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /volunteers/{id} [delete]
func (h *VolunteerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete volunteer")
		return
	}

	response.Success(w, "Volunteer deleted successfully", nil)
}

// UploadPhoto uploads or replaces a volunteer's profile photo
// @Summary      Upload volunteer photo
// @Description  Upload a JPEG or PNG profile photo for a volunteer (max 10MB); the photo is printed on badges
// @Tags         volunteers
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Volunteer ID"
// @Param        photo  formData  file    true  "Photo file"
// @Security     BearerAuth
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /volunteers/{id}/photo [post]
func (h *VolunteerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxFileSize)
	if err := r.ParseMultipartForm(utils.MaxFileSize); err != nil {
		response.BadRequest(w, "File too large or invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "Photo file missing from request", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		response.BadRequest(w, "Only JPG and PNG photos are accepted", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, "Failed to read file")
		return
	}

	volunteer, err := h.svc.UploadPhoto(r.Context(), id, data, contentType)
	if err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Photo uploaded successfully", volunteer)
}

func parseIntQuery(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
