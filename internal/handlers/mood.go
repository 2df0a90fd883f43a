package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/services"
)

type MoodHandler struct {
	log         *logger.Logger
	moodService services.MoodService
}

func NewMoodHandler(log *logger.Logger, moodService services.MoodService) *MoodHandler {
	return &MoodHandler{
		log:         log.With("handler", "MoodHandler"),
		moodService: moodService,
	}
}

func (h *MoodHandler) Log(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Mood      string `json:"mood"`
		Journal   string `json:"journal"`
		Intensity string `json:"intensity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := h.moodService.Record(c.Request.Context(), rd.UserID, body.Mood, body.Journal, body.Intensity)
	if err != nil {
		h.log.Error("Log mood failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, entry)
}

func (h *MoodHandler) Latest(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	entry, err := h.moodService.Latest(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Latest mood failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	// No mood on record is an empty result, not an error.
	RespondOK(c, gin.H{"mood": entry})
}

func (h *MoodHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	days, _ := strconv.Atoi(c.Query("days"))
	entries, err := h.moodService.History(c.Request.Context(), rd.UserID, days)
	if err != nil {
		h.log.Error("Mood history failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"moods": entries, "count": len(entries)})
}
