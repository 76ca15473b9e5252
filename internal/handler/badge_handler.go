package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

type BadgeHandler struct {
	svc service.BadgeService
}

func NewBadgeHandler(svc service.BadgeService) *BadgeHandler {
	return &BadgeHandler{svc: svc}
}

// Create issues a new badge
// @Summary      Issue a badge
// @Description  Issue a badge for a volunteer; totals are snapshotted at issue time and the badge name defaults from hour tiers
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        request  body      model.IssueBadgeRequest  true  "Badge issue request"
// @Security     BearerAuth
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /badges [post]
func (h *BadgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.IssueBadgeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	if req.VolunteerID == "" {
		response.BadRequest(w, "Validation failed", utils.ValidationErrors{"volunteer_id": "Volunteer ID is required"})
		return
	}

	badge, err := h.svc.Issue(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Badge issued successfully", badge)
}

// Latest returns a volunteer's most recently issued badge
// @Summary      Get latest badge for a volunteer
// @Description  Get the most recently issued badge of a volunteer
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        id  path      string  true  "Volunteer ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /volunteers/{id}/badge [get]
func (h *BadgeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	volunteerID := chi.URLParam(r, "id")

	badge, err := h.svc.LatestForVolunteer(r.Context(), volunteerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVolunteerNotFound), errors.Is(err, service.ErrBadgeNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to retrieve badge")
		}
		return
	}

	response.Success(w, "Badge retrieved successfully", badge)
}

// Preview returns the badge as a base64 data URL for in-page display
// @Summary      Preview a badge
// @Description  Render the badge PNG and return it as a data URL
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        badgeId  path      string  true  "Badge ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /badges/{badgeId}/preview [get]
func (h *BadgeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	badgeID := chi.URLParam(r, "badgeId")

	dataURL, err := h.svc.DataURL(r.Context(), badgeID)
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to render badge")
		return
	}

	response.Success(w, "Badge rendered successfully", map[string]string{"data_url": dataURL})
}

// Download renders and returns the badge PNG
// @Summary      Download badge PNG
// @Description  Render and download the 320x500 badge image for a badge ID
// @Tags         badges
// @Produce      image/png
// @Param        badgeId  path      string  true  "Badge ID"
// @Success      200  {file}    file    "Badge PNG file"
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /badges/{badgeId}/image [get]
func (h *BadgeHandler) Download(w http.ResponseWriter, r *http.Request) {
	badgeID := chi.URLParam(r, "badgeId")

	pngBytes, filename, err := h.svc.PNG(r.Context(), badgeID)
	if err != nil {
		if errors.Is(err, service.ErrBadgeNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to render badge")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pngBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pngBytes)
}

// Verify checks the validity of a badge via its public ID
// @Summary      Verify a badge
// @Description  Public verify endpoint backing the URL embedded in badge QR codes
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        badgeId  path      string  true  "Badge ID"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /badges/{badgeId}/verify [get]
func (h *BadgeHandler) Verify(w http.ResponseWriter, r *http.Request) {
	badgeID := chi.URLParam(r, "badgeId")

	result, err := h.svc.Verify(r.Context(), badgeID)
	if err != nil {
		response.InternalError(w, "Failed to verify badge")
		return
	}

	if !result.IsValid {
		response.JSON(w, http.StatusUnprocessableEntity, false, result.Message, result)
		return
	}

	response.Success(w, result.Message, result)
}
