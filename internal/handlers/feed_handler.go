package handlers

import (
	"net/http"

	"github.com/casual-cat/instamini-project/internal/feed"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// FeedHandler renders the aggregated feed
type FeedHandler struct {
	aggregator *feed.Aggregator
	metrics    *metrics.Metrics
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(aggregator *feed.Aggregator, m *metrics.Metrics) *FeedHandler {
	return &FeedHandler{aggregator: aggregator, metrics: m}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed, middleware.RequireLogin(""))
}

// GetFeed renders stories and posts for the viewer
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewer := session.FromContext(c)

	done := h.metrics.TrackFeedBuild()
	f, err := h.aggregator.Feed(c.Request().Context(), viewer.UserID)
	done()
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "feed.html", echo.Map{
		"Feed": f,
	})
}
