package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceStatus reports which backing services are usable right now. The
// process stays up in degraded mode; clients can poll this to see what works.
type ServiceStatus struct {
	Storage bool `json:"storage"`
	AI      bool `json:"ai"`
}

type HealthHandler struct {
	status func() ServiceStatus
}

func NewHealthHandler(status func() ServiceStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) ServiceHealth(c *gin.Context) {
	s := h.status()
	RespondOK(c, gin.H{
		"status":    "ok",
		"services":  s,
		"timestamp": time.Now().UTC(),
	})
}
