package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/services"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
	moodService services.MoodService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService, moodService services.MoodService) *ChatHandler {
	return &ChatHandler{
		log:         log.With("handler", "ChatHandler"),
		chatService: chatService,
		moodService: moodService,
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, err := h.chatService.HandleMessage(c.Request.Context(), rd.UserID, body.SessionID, body.Message)
	if err != nil {
		h.log.Error("SendMessage failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reply)
}

func (h *ChatHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, err := h.chatService.History(c.Request.Context(), rd.UserID, c.Query("session_id"), limit)
	if err != nil {
		h.log.Error("History failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": messages, "count": len(messages)})
}

func (h *ChatHandler) AnalyzeMood(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Text    string `json:"text"`
		Persist bool   `json:"persist"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	analysis, err := h.moodService.AnalyzeText(c.Request.Context(), rd.UserID, body.Text, body.Persist)
	if err != nil {
		h.log.Error("AnalyzeMood failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, analysis)
}

func (h *ChatHandler) ConversationStarter(c *gin.Context) {
	RespondOK(c, gin.H{"starter": h.chatService.ConversationStarter()})
}
