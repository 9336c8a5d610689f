package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct messages
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	words             filter.WordSet
	metrics           *metrics.Metrics
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, words filter.WordSet, m *metrics.Metrics) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		words:             words,
		metrics:           m,
	}
}

// RegisterMessageRoutes registers message routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	requireLogin := middleware.RequireLogin("")
	g.GET("/messages", h.ListConversations, requireLogin)
	g.GET("/messages/:username", h.GetConversation, requireLogin)
	g.POST("/messages/:username", h.SendMessage, requireLogin)
	g.GET("/messages_api/:username", h.PollConversation, middleware.RequireLoginJSON())
}

// ListConversations shows everyone the viewer has exchanged messages with
func (h *MessageHandler) ListConversations(c echo.Context) error {
	viewer := session.FromContext(c)
	partners, err := h.messageRepository.GetConversationPartners(c.Request().Context(), viewer.UserID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "messages.html", echo.Map{
		"Partners": partners,
	})
}

// GetConversation shows the thread with one user
func (h *MessageHandler) GetConversation(c echo.Context) error {
	viewer := session.FromContext(c)
	other, err := h.lookupPartner(c)
	if err != nil {
		return err
	}
	if other == nil {
		session.AddFlash(c, session.FlashError, "User does not exist!")
		return c.Redirect(http.StatusFound, "/messages")
	}

	views, err := h.conversation(c, viewer.UserID, other.ID)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "messages.html", echo.Map{
		"Conversation": true,
		"OtherUser":    other,
		"Messages":     views,
	})
}

// SendMessage posts a message to one user. Blank messages are ignored.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	viewer := session.FromContext(c)
	other, err := h.lookupPartner(c)
	if err != nil {
		return err
	}
	if other == nil {
		session.AddFlash(c, session.FlashError, "User does not exist!")
		return c.Redirect(http.StatusFound, "/messages")
	}
	back := "/messages/" + url.PathEscape(other.Username)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	content := screenText("message", req.Content, h.words, h.metrics)
	if content.TooLong {
		session.AddFlash(c, session.FlashError, fmt.Sprintf("Message up to %d words. You used %d.", filter.MaxWords, content.WordCount))
		return c.Redirect(http.StatusFound, back)
	}

	if content.Text != "" {
		msg := &models.Message{SenderID: viewer.UserID, RecipientID: other.ID, Content: content.Text}
		if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusFound, back)
}

// PollConversation returns the thread as JSON for client-side refresh
func (h *MessageHandler) PollConversation(c echo.Context) error {
	viewer := session.FromContext(c)
	other, err := h.lookupPartner(c)
	if err != nil {
		return err
	}
	if other == nil {
		return jsonError(c, http.StatusNotFound, "User not found")
	}

	views, err := h.conversation(c, viewer.UserID, other.ID)
	if err != nil {
		return err
	}
	for i := range views {
		views[i].RecipientProfilePicture = ""
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": views})
}

// lookupPartner resolves :username, returning nil when no such user exists
func (h *MessageHandler) lookupPartner(c echo.Context) (*models.User, error) {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (h *MessageHandler) conversation(c echo.Context, userID, otherID uint) ([]models.MessageView, error) {
	msgs, err := h.messageRepository.GetConversation(c.Request().Context(), userID, otherID)
	if err != nil {
		return nil, err
	}
	views := make([]models.MessageView, len(msgs))
	for i := range msgs {
		views[i] = msgs[i].ToView()
	}
	return views, nil
}
