package handlers

import (
	"net/http"

	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	metrics        *metrics.Metrics
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, m *metrics.Metrics) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo, metrics: m}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like_api/:post_id", h.ToggleLike, middleware.RequireLoginJSON())
}

// ToggleLike flips the viewer's like and reports the new state and count
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	viewer := session.FromContext(c)
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	liked, err := h.likeRepository.Toggle(ctx, postID, viewer.UserID)
	if err != nil {
		return err
	}
	h.metrics.ObserveToggle("like", liked)

	count, err := h.likeRepository.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return err
	}

	status := "unliked"
	if liked {
		status = "liked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":     status,
		"like_count": count,
	})
}
