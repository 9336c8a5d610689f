package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/casual-cat/instamini-project/internal/feed"
	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/handlers"
	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/middleware"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/casual-cat/instamini-project/internal/views"
	"github.com/casual-cat/instamini-project/validators"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies are the collaborators shared by every route
type Dependencies struct {
	DB            *gorm.DB
	Sessions      session.Store
	Words         filter.WordSet
	Media         *media.Store
	Metrics       *metrics.Metrics
	Log           *zap.Logger
	AuthRateLimit float64
}

// New builds a fully wired echo instance
func New(deps Dependencies) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = validators.NewValidator()

	SetupMiddleware(e, deps)
	SetupRoutes(e, deps)
	return e, nil
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, deps Dependencies) {
	e.Use(middleware.RequestLogger(deps.Log))
	// outside Recover so recovered panics are counted as 500s
	e.Use(deps.Metrics.Middleware())
	e.Use(eMiddleware.Recover())
	e.Use(middleware.LoadSession(deps.Sessions, deps.Log))
	deps.Log.Debug("global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", deps.Metrics.Handler())
	e.GET("/uploads/:filename", func(c echo.Context) error {
		return deps.Media.Serve(c, c.Param("filename"))
	})
	e.GET("/", func(c echo.Context) error {
		if session.FromContext(c) != nil {
			return c.Redirect(http.StatusFound, "/feed")
		}
		return c.Redirect(http.StatusFound, "/login")
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.DB)
	postRepo := repositories.NewPostgresPostRepository(deps.DB)
	storyRepo := repositories.NewStoryRepository(deps.DB)
	likeRepo := repositories.NewPostgresLikeRepository(deps.DB)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(deps.DB)
	commentRepo := repositories.NewPostgresCommentRepository(deps.DB)
	messageRepo := repositories.NewPostgresMessageRepository(deps.DB)
	followRepo := repositories.NewPostgresFollowRepository(deps.DB)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.DB)

	aggregator := feed.NewAggregator(userRepo, postRepo, storyRepo, likeRepo, savedPostRepo, commentRepo)

	g := e.Group("")

	authHandler := handlers.NewAuthHandler(userRepo, deps.Sessions, deps.Words, deps.Log)
	authHandler.RegisterAuthRoutes(g, authRateLimiter(deps.AuthRateLimit))

	handlers.NewFeedHandler(aggregator, deps.Metrics).RegisterFeedRoutes(g)
	handlers.NewPostHandler(postRepo, deps.Media, deps.Words, deps.Metrics, deps.Log).RegisterPostRoutes(g)
	handlers.NewStoryHandler(storyRepo, deps.Media, deps.Log).RegisterStoryRoutes(g)
	handlers.NewLikeHandler(likeRepo, deps.Metrics).RegisterLikeRoutes(g)
	handlers.NewSavedPostHandler(savedPostRepo, deps.Metrics).RegisterSavedPostRoutes(g)
	handlers.NewCommentHandler(commentRepo, postRepo, deps.Words, deps.Metrics).RegisterCommentRoutes(g)
	handlers.NewMessageHandler(messageRepo, userRepo, deps.Words, deps.Metrics).RegisterMessageRoutes(g)
	handlers.NewUserHandler(userRepo, followRepo, aggregator, deps.Media, deps.Log).RegisterProfileRoutes(g)
	handlers.NewFollowHandler(followRepo, userRepo, notificationRepo, deps.Log).RegisterFollowRoutes(g)
	handlers.NewNotificationHandler(notificationRepo).RegisterNotificationRoutes(g)

	deps.Log.Info("routes configured", zap.Int("count", len(e.Routes())))
}

// authRateLimiter throttles credential posts per client IP. A non-positive limit disables it.
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	store := eMiddleware.NewRateLimiterMemoryStoreWithConfig(eMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return eMiddleware.RateLimiterWithConfig(eMiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many attempts. Please wait a moment.")
		},
	})
}
