package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/services"
)

type ConversationHandler struct {
	log         *logger.Logger
	convService services.ConversationService
	chatService services.ChatService
}

func NewConversationHandler(log *logger.Logger, convService services.ConversationService, chatService services.ChatService) *ConversationHandler {
	return &ConversationHandler{
		log:         log.With("handler", "ConversationHandler"),
		convService: convService,
		chatService: chatService,
	}
}

func (h *ConversationHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	// Empty body is fine, the title gets defaulted.
	_ = c.ShouldBindJSON(&body)
	conv, err := h.convService.Create(c.Request.Context(), rd.UserID, body.Title)
	if err != nil {
		h.log.Error("Create conversation failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, conv)
}

func (h *ConversationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	convs, err := h.convService.List(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		h.log.Error("List conversations failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"conversations": convs, "count": len(convs)})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	conv, err := h.convService.Get(c.Request.Context(), rd.UserID, c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, conv)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := h.convService.Delete(c.Request.Context(), rd.UserID, c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// SendMessage runs one chat turn inside a conversation the caller owns.
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	reply, err := h.chatService.HandleConversationMessage(c.Request.Context(), rd.UserID, c.Param("id"), body.Message)
	if err != nil {
		h.log.Error("Conversation message failed", "error", err, "user_id", rd.UserID, "conversation_id", c.Param("id"))
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reply)
}
