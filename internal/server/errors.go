package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	recordsdomain "github.com/otomarket/otomarket/internal/records/domain"
	verificationdomain "github.com/otomarket/otomarket/internal/verification/domain"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrInternal       = errors.New("internal_error")
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	case errors.Is(err, ErrNotFound), errors.Is(err, recordsdomain.ErrSubscriptionNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case errors.Is(err, verificationdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorPayload{Type: "storage_unavailable", Message: err.Error()}
	case errors.Is(err, verificationdomain.ErrDeliveryFailed):
		return http.StatusBadGateway, errorPayload{Type: "delivery_failed", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}
