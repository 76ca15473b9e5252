// Package response defines the JSON envelope every API endpoint returns.
// Binary endpoints (certificate PDFs, badge PNGs) bypass it and write their
// bytes with Content-Disposition headers directly.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for single-object and error replies.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// PaginatedResponse wraps list replies together with their page metadata.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func write(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func JSON(w http.ResponseWriter, statusCode int, success bool, message string, data interface{}) {
	write(w, statusCode, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

func Success(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, true, message, data)
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusCreated, true, message, data)
}

// BadRequest carries field-level validation errors in the Errors slot instead
// of Data.
func BadRequest(w http.ResponseWriter, message string, errors interface{}) {
	write(w, http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, false, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, false, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, false, message, nil)
}

func InternalError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, false, message, nil)
}

func Paginated(w http.ResponseWriter, message string, data interface{}, pagination *Pagination) {
	write(w, http.StatusOK, PaginatedResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}
