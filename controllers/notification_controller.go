package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crm-api/services"
)

type NotificationController struct {
	notifications *services.NotificationService
	now           func() time.Time
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications, now: time.Now}
}

/* ==========================
   Handlers
   ========================== */

// ListNotifications returns the caller's notifications grouped into
// Today / Yesterday / This Week / Earlier. ?grouped=false returns the flat list.
func (h *NotificationController) ListNotifications(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	grouped := true
	if raw := c.Query("grouped"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid grouped"})
			return
		}
		grouped = v
	}

	if !grouped {
		items, err := h.notifications.List(ctx, uid)
		if err != nil {
			respondError(c, err)
			return
		}
		unread, err := h.notifications.UnreadCount(ctx, uid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "unread_count": unread})
		return
	}

	feed, err := h.notifications.Feed(ctx, uid, h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": feed.Sections, "unread_count": feed.UnreadCount})
}

func (h *NotificationController) GetUnreadCount(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	n, err := h.notifications.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": n})
}

func (h *NotificationController) MarkAsRead(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationController) MarkAllAsRead(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	n, err := h.notifications.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}

func (h *NotificationController) DeleteNotification(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification deleted"})
}
