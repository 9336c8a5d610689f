package handlers

import (
	"net/http"

	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles saved post toggles
type SavedPostHandler struct {
	savedPostRepository repositories.SavedPostRepository
	metrics             *metrics.Metrics
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostRepo repositories.SavedPostRepository, m *metrics.Metrics) *SavedPostHandler {
	return &SavedPostHandler{savedPostRepository: savedPostRepo, metrics: m}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/save_api/:post_id", h.ToggleSave, middleware.RequireLoginJSON())
}

func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	viewer := session.FromContext(c)
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	saved, err := h.savedPostRepository.Toggle(c.Request().Context(), postID, viewer.UserID)
	if err != nil {
		return err
	}
	h.metrics.ObserveToggle("save", saved)

	status := "unsaved"
	if saved {
		status = "saved"
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status})
}
