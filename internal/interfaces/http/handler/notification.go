package handler

import (
	"github.com/gin-gonic/gin"
	notificationapp "github.com/sdkart/backend/internal/application/notification"
	"github.com/sdkart/backend/internal/interfaces/http/middleware"
)

// NotificationHandler handles the authenticated user's notifications
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications with the unread count
func (h *NotificationHandler) List(c *gin.Context) {
	resp, err := h.notificationService.List(c.Request.Context(), middleware.GetUserID(c), bindListFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
