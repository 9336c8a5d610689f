package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PostHandler handles post creation and deletion
type PostHandler struct {
	postRepository repositories.PostRepository
	media          *media.Store
	words          filter.WordSet
	metrics        *metrics.Metrics
	log            *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, store *media.Store, words filter.WordSet, m *metrics.Metrics, log *zap.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		media:          store,
		words:          words,
		metrics:        m,
		log:            log,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/feed", h.CreatePost, middleware.RequireLogin(""))
	g.POST("/delete_post/:post_id", h.DeletePost, middleware.RequireLogin("Must be logged in to delete posts"))
}

// CreatePost stores a post from the feed form. Empty submissions are ignored.
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewer := session.FromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	content := screenText("post", req.Content, h.words, h.metrics)
	if content.TooLong {
		session.AddFlash(c, session.FlashError, fmt.Sprintf("Post max %d words. You used %d.", filter.MaxWords, content.WordCount))
		return c.Redirect(http.StatusFound, "/feed")
	}

	var mediaFilename string
	if fh, err := c.FormFile("media_file"); err == nil {
		mediaFilename = h.media.SaveOptional(fh)
	}

	if content.Text != "" || mediaFilename != "" {
		post := &models.Post{
			UserID:        viewer.UserID,
			Content:       content.Text,
			MediaFilename: mediaFilename,
		}
		if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
			return err
		}
		h.log.Debug("post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", viewer.UserID))
	}
	return c.Redirect(http.StatusFound, "/feed")
}

// DeletePost removes a post owned by the viewer, or any post for the admin
func (h *PostHandler) DeletePost(c echo.Context) error {
	viewer := session.FromContext(c)
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.postRepository.GetPostByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		session.AddFlash(c, session.FlashError, "Post not found!")
		return c.Redirect(http.StatusFound, "/feed")
	}
	if err != nil {
		return err
	}

	if !viewer.CanModify(post.UserID) {
		session.AddFlash(c, session.FlashError, "Cannot delete others' post!")
		return c.Redirect(http.StatusFound, "/feed")
	}

	if err := h.postRepository.DeletePost(ctx, postID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	h.log.Info("post deleted", zap.Uint("post_id", postID), zap.String("by", viewer.Username))
	session.AddFlash(c, session.FlashSuccess, "Post deleted!")
	return c.Redirect(http.StatusFound, "/feed")
}
