package handlers

import (
	"errors"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StoryHandler handles story uploads
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	media           *media.Store
	log             *zap.Logger
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, store *media.Store, log *zap.Logger) *StoryHandler {
	return &StoryHandler{storyRepository: storyRepo, media: store, log: log}
}

// RegisterStoryRoutes registers story routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/upload_story", h.UploadStory, middleware.RequireLogin("Must be logged in to upload story"))
}

// UploadStory stores a media-only story
func (h *StoryHandler) UploadStory(c echo.Context) error {
	viewer := session.FromContext(c)

	fh, _ := c.FormFile("story_file")
	filename, err := h.media.Save(fh)
	switch {
	case errors.Is(err, media.ErrNoFile):
		session.AddFlash(c, session.FlashError, "No file selected or invalid filename")
		return c.Redirect(http.StatusFound, "/feed")
	case errors.Is(err, media.ErrExtension):
		session.AddFlash(c, session.FlashError, "Invalid file extension for story")
		return c.Redirect(http.StatusFound, "/feed")
	case err != nil:
		return err
	}

	story := &models.Story{UserID: viewer.UserID, MediaFilename: filename}
	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return err
	}
	h.log.Debug("story uploaded", zap.Uint("story_id", story.ID), zap.String("filename", filename))
	session.AddFlash(c, session.FlashSuccess, "Story uploaded!")
	return c.Redirect(http.StatusFound, "/feed")
}
