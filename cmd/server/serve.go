package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/media"
	"github.com/casual-cat/instamini-project/internal/metrics"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/router"
	"github.com/casual-cat/instamini-project/internal/session"
	"github.com/casual-cat/instamini-project/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()
	if err := db.Migrate(); err != nil {
		return err
	}

	if err := ensureAdmin(ctx, repositories.NewPostgresUserRepository(db.Gorm), cfg.AdminPassword, log); err != nil {
		return err
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSessions(); err != nil {
			log.Warn("close session store", zap.Error(err))
		}
	}()
	store, err := media.NewDiskStore(cfg.UploadDir, log)
	if err != nil {
		return err
	}

	e, err := router.New(router.Dependencies{
		DB:            db.Gorm,
		Sessions:      sessions,
		Words:         filter.LoadFile(cfg.BadWordsFile, log),
		Media:         store,
		Metrics:       metrics.New(),
		Log:           log,
		AuthRateLimit: cfg.AuthRateLimit,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// ensureAdmin creates the admin account on first start. An existing admin keeps its password.
func ensureAdmin(ctx context.Context, users repositories.UserRepository, password string, log *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := users.EnsureUser(ctx, &models.User{
		Username:     models.AdminUsername,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}
	if created {
		log.Info("admin user created", zap.String("username", models.AdminUsername))
	}
	return nil
}

// newSessionStore keeps sessions server-side in redis when REDIS_URL is set, otherwise in signed cookies.
// The returned func releases the redis connection pool.
func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, func() error, error) {
	secure := cfg.IsProduction()
	if cfg.RedisURL == "" {
		log.Info("using cookie session store")
		return session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL, secure), func() error { return nil }, nil
	}
	client, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect session redis: %w", err)
	}
	log.Info("using redis session store")
	return session.NewRedisStore(client, cfg.SessionTTL, secure), client.Close, nil
}
