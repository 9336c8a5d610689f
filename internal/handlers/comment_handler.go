package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	words             filter.WordSet
	metrics           *metrics.Metrics
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, words filter.WordSet, m *metrics.Metrics) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		words:             words,
		metrics:           m,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comment_api/:post_id", h.CreateComment, middleware.RequireLoginJSON())
	g.POST("/delete_comment/:comment_id", h.DeleteComment, middleware.RequireLogin("Login required to delete comment"))
}

// CreateComment adds a comment and returns it joined with the author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewer := session.FromContext(c)
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request payload")
	}

	content := screenText("comment", req.Content, h.words, h.metrics)
	if content.TooLong {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Comment must be <= %d words", filter.MaxWords))
	}
	if content.Text == "" {
		h.metrics.ObserveRejection("comment", "empty")
		return jsonError(c, http.StatusBadRequest, "Comment is empty")
	}

	ctx := c.Request().Context()
	if _, err := h.postRepository.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return jsonError(c, http.StatusNotFound, "Post not found")
		}
		return err
	}

	comment := &models.Comment{PostID: postID, UserID: viewer.UserID, Content: content.Text}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return err
	}

	stored, err := h.commentRepository.GetCommentByID(ctx, comment.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": stored.ToView()})
}

// DeleteComment removes a comment owned by the viewer, or any comment for the admin
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	viewer := session.FromContext(c)
	commentID, err := paramID(c, "comment_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if errors.Is(err, repositories.ErrNotFound) {
		session.AddFlash(c, session.FlashError, "Comment not found!")
		return c.Redirect(http.StatusFound, "/feed")
	}
	if err != nil {
		return err
	}

	if !viewer.CanModify(comment.UserID) {
		session.AddFlash(c, session.FlashError, "Cannot delete others' comment!")
		return c.Redirect(http.StatusFound, "/feed")
	}

	if err := h.commentRepository.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	session.AddFlash(c, session.FlashSuccess, "Comment deleted!")
	return c.Redirect(http.StatusFound, "/feed")
}
