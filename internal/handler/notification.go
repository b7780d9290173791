package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minilms/backend/internal/constants"
	"github.com/minilms/backend/internal/middleware"
	"github.com/minilms/backend/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	resp, err := h.notifications.ListOwn(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgSuccess, resp))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := c.GetUint(middleware.CtxUserID)
	resp, err := h.notifications.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgUpdated, resp))
}
