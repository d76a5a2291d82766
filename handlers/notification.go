package handlers

import (
	"net/http"
	"strconv"

	"orgflow/services/notification"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the in-app notification read surface.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListHandler handles GET /api/notifications.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	logger := utils.GetLogger()
	employeeID := c.GetString("employeeID")

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	notifications, err := h.Service.List(c.Request.Context(), employeeID, limit)
	if err != nil {
		logger.Error("Failed to list notifications", zap.String("employeeID", employeeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	count, err := h.Service.UnreadCount(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkReadHandler handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	if err := h.Service.MarkRead(c.Request.Context(), c.Param("id"), employeeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// MarkAllReadHandler handles PATCH /api/notifications/mark-all-read.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	if err := h.Service.MarkAllRead(c.Request.Context(), employeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

// MarkActionedHandler handles PATCH /api/notifications/:id/action.
func (h *NotificationHandler) MarkActionedHandler(c *gin.Context) {
	employeeID := c.GetString("employeeID")
	if err := h.Service.MarkActioned(c.Request.Context(), c.Param("id"), employeeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification actioned"})
}
