package handlers

import (
	"net/http"

	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// notificationPageSize caps how many notifications the page lists
const notificationPageSize = 50

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	requireLogin := middleware.RequireLogin("")
	g.GET("/notifications", h.GetNotifications, requireLogin)
	g.GET("/notifications/unread-count", h.GetUnreadCount, middleware.RequireLoginJSON())
}

// GetNotifications lists the viewer's notifications, then marks them all read.
// Entries unread before this visit are still shown as new.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	viewer := session.FromContext(c)
	ctx := c.Request().Context()

	notifications, err := h.notificationRepository.GetByUserID(ctx, viewer.UserID, notificationPageSize)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAllAsRead(ctx, viewer.UserID); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "notifications.html", echo.Map{
		"Notifications": notifications,
	})
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), session.FromContext(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}
