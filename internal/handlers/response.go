package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps service error kinds onto status codes: bad input
// 400, missing or unowned resources 404, storage outage 503, model failure
// 502, everything else 500 with a generic message.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, docstore.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, docstore.ErrUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "storage_unavailable", errors.New("storage is temporarily unavailable"))
	case errors.Is(err, services.ErrUpstreamAI):
		RespondError(c, http.StatusBadGateway, "ai_unavailable", errors.New("ai service is temporarily unavailable"))
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
	}
}
