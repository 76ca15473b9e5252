package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/plogging-ethiopia/volunteer-ledger/internal/middleware"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/service"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	// Input validation
	errs := utils.ValidationErrors{}
	req.Email = utils.SanitizeString(strings.ToLower(req.Email))

	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !utils.IsValidEmail(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	}

	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(w, err.Error())
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Something went wrong")
		}
		return
	}

	response.Success(w, "Login successful", result)
}

// Register godoc
// POST /api/v1/auth/register
// Only admins can register new users (enforced at the route level)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	req.Name = utils.SanitizeString(req.Name)
	req.Email = utils.SanitizeString(strings.ToLower(req.Email))

	if req.Name == "" {
		errs["name"] = "Name is required"
	}
	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !utils.IsValidEmail(req.Email) {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if !utils.IsValidPassword(req.Password) {
		errs["password"] = "Password must be at least 8 characters with letters and digits"
	}

	validRoles := map[string]bool{"coordinator": true, "admin": true, "organizer": true}
	if req.Role != "" && !validRoles[string(req.Role)] {
		errs["role"] = "Invalid role (coordinator, admin, organizer)"
	}

	if errs.HasErrors() {
		response.BadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.InternalError(w, "Something went wrong")
		return
	}

	response.Created(w, "User created successfully", result)
}

// RefreshToken godoc
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshTokenRequest

	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", err.Error())
		return
	}

	if req.RefreshToken == "" {
		response.BadRequest(w, "Refresh token is required", nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	response.Success(w, "Token refreshed", tokenPair)
}

// Me godoc
// GET /api/v1/auth/me (protected)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	response.Success(w, "User retrieved successfully", user)
}
