package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/services"
)

type WellnessHandler struct {
	log      *logger.Logger
	wellness services.WellnessService
}

func NewWellnessHandler(log *logger.Logger, wellness services.WellnessService) *WellnessHandler {
	return &WellnessHandler{
		log:      log.With("handler", "WellnessHandler"),
		wellness: wellness,
	}
}

func (h *WellnessHandler) CopingStrategies(c *gin.Context) {
	mood := c.Query("mood")
	RespondOK(c, gin.H{"mood": mood, "strategies": h.wellness.CopingStrategies(mood)})
}

func (h *WellnessHandler) Quote(c *gin.Context) {
	RespondOK(c, h.wellness.RandomQuote())
}

func (h *WellnessHandler) MeditationTips(c *gin.Context) {
	RespondOK(c, gin.H{"tips": h.wellness.MeditationTips()})
}

func (h *WellnessHandler) Crisis(c *gin.Context) {
	RespondOK(c, h.wellness.Crisis())
}

func (h *WellnessHandler) LogActivity(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Activity string `json:"activity"`
		Details  string `json:"details"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := h.wellness.LogActivity(c.Request.Context(), rd.UserID, body.Activity, body.Details)
	if err != nil {
		h.log.Error("LogActivity failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *WellnessHandler) Activities(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.wellness.Activities(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		h.log.Error("Activities failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activities": entries, "count": len(entries)})
}
