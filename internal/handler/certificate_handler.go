package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/middleware"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/model"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

type CertificateHandler struct {
	svc service.CertificateService
}

func NewCertificateHandler(svc service.CertificateService) *CertificateHandler {
	return &CertificateHandler{svc: svc}
}

// Templates lists the available certificate templates
// @Summary      List certificate templates
// @Description  Get the built-in certificate templates with their colors and type
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /certificates/templates [get]
func (h *CertificateHandler) Templates(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "Templates retrieved successfully", h.svc.Templates())
}

// GetAll retrieves all certificates with optional filters
// @Summary      Get all certificates
// @Description  Get a paginated list of certificates
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        volunteer_id  query    string  false  "Filter by volunteer ID"
// @Param        event_id      query    string  false  "Filter by event ID"
// @Param        status        query    string  false  "Filter by certificate status (active, revoked)"
// @Param        page          query    int     false  "Page number"
// @Param        per_page      query    int     false  "Items per page"
// @Security     BearerAuth
// @Success      200  {object}  response.PaginatedResponse
// @Failure      500  {object}  response.Response
// @Router       /certificates [get]
func (h *CertificateHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.CertificateFilter{
		VolunteerID: q.Get("volunteer_id"),
		EventID:     q.Get("event_id"),
		Status:      q.Get("status"),
		Page:        parseIntQuery(q.Get("page"), 1),
		PerPage:     parseIntQuery(q.Get("per_page"), 10),
	}

	certs, pagination, err := h.svc.GetAll(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "Failed to retrieve certificates")
		return
	}

	response.Paginated(w, "Certificates retrieved successfully", certs, pagination)
}

// GetByID retrieves a specific certificate
// @Summary      Get certificate by ID
// @Description  Get detailed information about a certificate
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /certificates/{id} [get]
func (h *CertificateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cert, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to retrieve certificate")
		return
	}

	response.Success(w, "Certificate retrieved successfully", cert)
}

// Create issues a new certificate
// @Summary      Issue a certificate
// @Description  Issue a certificate for a volunteer, optionally tied to an event
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateCertificateRequest  true  "Certificate creation request"
// @Security     BearerAuth
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /certificates [post]
func (h *CertificateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCertificateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	if req.VolunteerID == "" {
		errs["volunteer_id"] = "Volunteer ID is required"
	}
	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	issuedBy := middleware.GetUserIDFromContext(r.Context())
	cert, err := h.svc.Issue(r.Context(), req, issuedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVolunteerNotFound), errors.Is(err, service.ErrEventNotFound):
			response.NotFound(w, err.Error())
		default:
			response.BadRequest(w, err.Error(), nil)
		}
		return
	}

	response.Created(w, "Certificate issued successfully", cert)
}

// CreateBatch issues certificates for every checked-out volunteer of an event
// @Summary      Issue certificates in batch
// @Description  Issue one certificate per checked-out volunteer of an event; failed items are reported per volunteer without aborting the batch
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request  body      model.BatchCertificateRequest  true  "Batch issue request"
// @Security     BearerAuth
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /certificates/batch [post]
func (h *CertificateHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req model.BatchCertificateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	if req.EventID == "" {
		response.BadRequest(w, "Validation failed", utils.ValidationErrors{"event_id": "Event ID is required"})
		return
	}

	issuedBy := middleware.GetUserIDFromContext(r.Context())
	items, err := h.svc.IssueBatch(r.Context(), req, issuedBy)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Batch processed", items)
}

// Revoke invalidates a certificate
// @Summary      Revoke a certificate
// @Description  Revoke an issued certificate
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id}/revoke [post]
func (h *CertificateHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Revoke(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Certificate revoked successfully", nil)
}

// Download generates and returns the certificate PDF
// @Summary      Download certificate PDF
// @Description  Generate and download the PDF for a specific certificate
// @Tags         certificates
// @Produce      application/pdf
// @Param        id   path      string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {file}    file    "Certificate PDF file"
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /certificates/{id}/download [get]
func (h *CertificateHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pdfBytes, filename, err := h.svc.DownloadPDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// Verify checks the validity of a certificate via its public token
// @Summary      Verify a certificate
// @Description  Public verify endpoint for a certificate QR token
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        token  path      string  true  "Verification Token"
// @Success      200    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /verify/{token} [get]
func (h *CertificateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result, err := h.svc.Verify(r.Context(), token)
	if err != nil {
		response.InternalError(w, "Failed to verify certificate")
		return
	}

	if !result.IsValid {
		response.JSON(w, http.StatusUnprocessableEntity, false, result.Message, result)
		return
	}

	response.Success(w, result.Message, result)
}
