package handlers

import (
	"errors"
	"net/http"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles sign-up, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       session.Store
	words          filter.WordSet
	log            *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions session.Store, words filter.WordSet, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
		words:          words,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication routes. limiter guards the form posts.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.GET("/signup", h.SignupPage)
	g.POST("/signup", h.Signup, limiter)
	g.GET("/login", h.LoginPage)
	g.POST("/login", h.Login, limiter)
	g.GET("/logout", h.Logout)
}

func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", echo.Map{})
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

// Signup creates an account from the sign-up form
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		msg := "Username and password are required."
		if req.Username != "" && req.Password != "" {
			msg = "Usernames may only contain letters, digits, '.', '_' and '-'."
		}
		session.AddFlash(c, session.FlashError, msg)
		return c.Render(http.StatusOK, "signup.html", echo.Map{})
	}

	if filter.ContainsDisallowed(req.Username, h.words) {
		session.AddFlash(c, session.FlashError, "Offensive/slur in username. Please choose another.")
		return c.Redirect(http.StatusFound, "/signup")
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		session.AddFlash(c, session.FlashError, "Username already exists!")
		return c.Render(http.StatusOK, "signup.html", echo.Map{})
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		session.AddFlash(c, session.FlashError, "Sign-up failed. Please try again.")
		return c.Render(http.StatusOK, "signup.html", echo.Map{})
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hashedPassword)}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			session.AddFlash(c, session.FlashError, "Username already exists!")
		} else {
			h.log.Error("create user failed", zap.String("username", req.Username), zap.Error(err))
			session.AddFlash(c, session.FlashError, "Sign-up failed. Please try again.")
		}
		return c.Render(http.StatusOK, "signup.html", echo.Map{})
	}

	h.log.Info("user signed up", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	session.AddFlash(c, session.FlashSuccess, "Sign-up successful! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}

// Login checks credentials and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if user == nil || c.Validate(&req) != nil ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		session.AddFlash(c, session.FlashError, "Invalid username or password!")
		return c.Render(http.StatusOK, "login.html", echo.Map{})
	}

	if err := h.sessions.Save(c, session.Session{UserID: user.ID, Username: user.Username}); err != nil {
		return err
	}
	session.AddFlash(c, session.FlashSuccess, "Welcome back!")
	return c.Redirect(http.StatusFound, "/feed")
}

// Logout ends the session
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		h.log.Warn("session clear failed", zap.Error(err))
	}
	session.AddFlash(c, session.FlashInfo, "Logged out")
	return c.Redirect(http.StatusFound, "/login")
}
