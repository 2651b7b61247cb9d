package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ferrybackend/internal/domain"
	"ferrybackend/internal/http/middleware"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"details":    details,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal state
// names never leak: stale-alert conditions all read as "please refresh".
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "forbidden", "you do not have access to this resource", nil)
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusConflict, "stale_state", "this alert has changed, please refresh", nil)
	case domain.IsConcurrentModification(err):
		respondError(c, http.StatusConflict, "concurrent_modification", "this alert has changed, please refresh", nil)
	case domain.IsInvariantViolation(err):
		respondError(c, http.StatusInternalServerError, "invariant_violation", "something went wrong", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
