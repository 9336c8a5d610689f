package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/feed"
	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler handles profile pages and edits
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	aggregator       *feed.Aggregator
	media            *media.Store
	log              *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, aggregator *feed.Aggregator, store *media.Store, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		aggregator:       aggregator,
		media:            store,
		log:              log,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	requireLogin := middleware.RequireLogin("")
	g.GET("/profile", h.GetProfile, requireLogin)
	g.POST("/profile", h.UpdateProfile, requireLogin)

	admin := []echo.MiddlewareFunc{middleware.RequireAdmin()}
	g.GET("/admin_edit/:user_id", h.AdminGetProfile, admin...)
	g.POST("/admin_edit/:user_id", h.AdminUpdateProfile, admin...)

	g.GET("/user/:username", h.GetPublicProfile)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	return h.renderProfile(c, session.FromContext(c).UserID, false)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	return h.updateProfile(c, session.FromContext(c).UserID, false)
}

func (h *UserHandler) AdminGetProfile(c echo.Context) error {
	id, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	return h.renderProfile(c, id, true)
}

func (h *UserHandler) AdminUpdateProfile(c echo.Context) error {
	id, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	return h.updateProfile(c, id, true)
}

// GetPublicProfile shows any user's posts and follow counts; no login required
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.aggregator.PublicProfile(ctx, c.Param("username"))
	if errors.Is(err, repositories.ErrNotFound) {
		session.AddFlash(c, session.FlashError, "User does not exist!")
		return c.Redirect(http.StatusFound, "/feed")
	}
	if err != nil {
		return err
	}

	followers, err := h.followRepository.GetFollowersCount(ctx, p.User.ID)
	if err != nil {
		return err
	}
	following, err := h.followRepository.GetFollowingCount(ctx, p.User.ID)
	if err != nil {
		return err
	}
	var isFollowing bool
	if viewer := session.FromContext(c); viewer != nil {
		if isFollowing, err = h.followRepository.IsFollowing(ctx, viewer.UserID, p.User.ID); err != nil {
			return err
		}
	}

	return c.Render(http.StatusOK, "user_profile.html", echo.Map{
		"Profile":     p,
		"Followers":   followers,
		"Following":   following,
		"IsFollowing": isFollowing,
	})
}

func (h *UserHandler) renderProfile(c echo.Context, userID uint, adminEdit bool) error {
	p, err := h.aggregator.Profile(c.Request().Context(), userID)
	if errors.Is(err, repositories.ErrNotFound) {
		session.AddFlash(c, session.FlashError, "User does not exist!")
		return c.Redirect(http.StatusFound, "/feed")
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"Profile":     p,
		"IsAdminEdit": adminEdit,
		"FormAction":  profilePath(userID, adminEdit),
	})
}

// updateProfile always replaces the bio; the picture changes only for an accepted upload
func (h *UserHandler) updateProfile(c echo.Context, userID uint, adminEdit bool) error {
	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, session.FlashError, "User does not exist!")
			return c.Redirect(http.StatusFound, "/feed")
		}
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if fh, err := c.FormFile("profile_picture"); err == nil {
		if name := h.media.SaveOptional(fh); name != "" {
			if err := h.userRepository.UpdateProfilePicture(ctx, userID, name); err != nil {
				return err
			}
		}
	}
	if err := h.userRepository.UpdateBio(ctx, userID, req.Bio); err != nil {
		return err
	}

	h.log.Info("profile updated", zap.Uint("user_id", userID), zap.Bool("admin_edit", adminEdit))
	session.AddFlash(c, session.FlashSuccess, "Profile updated!")
	return c.Redirect(http.StatusFound, profilePath(userID, adminEdit))
}

func profilePath(userID uint, adminEdit bool) string {
	if adminEdit {
		return fmt.Sprintf("/admin_edit/%d", userID)
	}
	return "/profile"
}
