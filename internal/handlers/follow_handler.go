package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	log                    *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, log *zap.Logger) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:username", h.ToggleFollow, middleware.RequireLogin("Must be logged in to follow"))
}

// ToggleFollow follows the user when the viewer does not yet, otherwise unfollows.
// A new follow notifies the followed user.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	viewer := session.FromContext(c)
	ctx := c.Request().Context()

	target, err := h.userRepository.GetUserByUsername(ctx, c.Param("username"))
	if errors.Is(err, repositories.ErrNotFound) {
		session.AddFlash(c, session.FlashError, "User does not exist!")
		return c.Redirect(http.StatusFound, "/feed")
	}
	if err != nil {
		return err
	}
	back := "/user/" + url.PathEscape(target.Username)

	if target.ID == viewer.UserID {
		session.AddFlash(c, session.FlashError, "You cannot follow yourself.")
		return c.Redirect(http.StatusFound, back)
	}

	following, err := h.followRepository.IsFollowing(ctx, viewer.UserID, target.ID)
	if err != nil {
		return err
	}
	if following {
		if err := h.followRepository.Unfollow(ctx, viewer.UserID, target.ID); err != nil {
			return err
		}
		session.AddFlash(c, session.FlashInfo, fmt.Sprintf("You unfollowed %s.", target.Username))
		return c.Redirect(http.StatusFound, back)
	}

	created, err := h.followRepository.Follow(ctx, viewer.UserID, target.ID)
	if err != nil {
		return err
	}
	if created {
		notif := &models.Notification{
			UserID:  target.ID,
			Message: viewer.Username + " started following you",
		}
		// the follow stands even if the notification cannot be stored
		if err := h.notificationRepository.CreateNotification(ctx, notif); err != nil {
			h.log.Warn("follow notification dropped", zap.Uint("user_id", target.ID), zap.Error(err))
		}
	}
	session.AddFlash(c, session.FlashSuccess, fmt.Sprintf("You are now following %s.", target.Username))
	return c.Redirect(http.StatusFound, back)
}
