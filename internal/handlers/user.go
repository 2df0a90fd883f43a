package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/requestdata"
	"github.com/mindease/mindease-backend/internal/services"
)

type UserHandler struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	wellness services.WellnessService
}

func NewUserHandler(log *logger.Logger, userRepo repos.UserRepo, wellness services.WellnessService) *UserHandler {
	return &UserHandler{
		log:      log.With("handler", "UserHandler"),
		userRepo: userRepo,
		wellness: wellness,
	}
}

// Me returns the caller's profile, creating it on first sight.
func (h *UserHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.userRepo.Ensure(c.Request.Context(), rd.UserID, rd.Email, rd.DisplayName)
	if err != nil {
		h.log.Error("Me failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}

func (h *UserHandler) Stats(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == "" {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	stats, err := h.wellness.Stats(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Stats failed", "error", err, "user_id", rd.UserID)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
