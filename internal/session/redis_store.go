package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions server-side; the cookie only carries a random id
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewRedisStore creates a RedisStore on an existing client
func NewRedisStore(client *redis.Client, ttl time.Duration, secure bool) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, secure: secure}
}

// NewRedisClient parses a redis:// URL and pings the server
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Save(c echo.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	id := uuid.NewString()
	if err := s.client.Set(c.Request().Context(), redisKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	writeCookie(c, id, s.ttl, s.secure)
	return nil
}

func (s *RedisStore) Load(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return nil, ErrNoSession
	}

	data, err := s.client.Get(c.Request().Context(), redisKeyPrefix+cookie.Value).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *RedisStore) Clear(c echo.Context) error {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := s.client.Del(c.Request().Context(), redisKeyPrefix+cookie.Value).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	expireCookie(c, s.secure)
	return nil
}
