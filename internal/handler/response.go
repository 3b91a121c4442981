package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zapshift/internal/repository"
	"zapshift/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidParcelID),
		errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidSessionID),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidRiderStatus):
		return http.StatusBadRequest

	// Lifecycle conflicts
	case errors.Is(err, service.ErrParcelNotPaid),
		errors.Is(err, service.ErrRiderNotApproved):
		return http.StatusConflict

	// External gateway failures, surfaced unmodified
	case errors.Is(err, service.ErrPaymentGateway),
		errors.Is(err, service.ErrPaymentLookup):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
