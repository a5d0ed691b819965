package handlers

import (
	"net/http"

	"pnovbridge/internal/domain"
	"pnovbridge/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// errorCode names err for responses and metrics labels.
func errorCode(err error) (int, string) {
	switch {
	case domain.IsMissingFile(err):
		return http.StatusBadRequest, "missing_file"
	case domain.IsTooLarge(err):
		return http.StatusRequestEntityTooLarge, "too_large"
	case domain.IsSchema(err):
		return http.StatusUnprocessableEntity, "schema_error"
	case domain.IsParse(err):
		return http.StatusBadRequest, "parse_error"
	case domain.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	status, code := errorCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
		_ = c.Error(err)
	}
	respondError(c, status, code, msg)
}
