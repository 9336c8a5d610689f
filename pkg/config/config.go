package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is the documented fallback secret. It is refused in production.
const DefaultSessionSecret = "YOUR_SUPER_SECRET_KEY"

type Config struct {
	Port          string        `mapstructure:"PORT"`
	Env           string        `mapstructure:"ENV"`
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	DBPath        string        `mapstructure:"DB_PATH"`
	DBHost        string        `mapstructure:"DB_HOST"`
	DBPort        string        `mapstructure:"DB_PORT"`
	DBUser        string        `mapstructure:"DB_USER"`
	DBPassword    string        `mapstructure:"DB_PASSWORD"`
	DBName        string        `mapstructure:"DB_NAME"`
	DBSSLMode     string        `mapstructure:"DB_SSLMODE"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	RedisURL      string        `mapstructure:"REDIS_URL"`
	UploadDir     string        `mapstructure:"UPLOAD_DIR"`
	BadWordsFile  string        `mapstructure:"BAD_WORDS_FILE"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	LogFile       string        `mapstructure:"LOG_FILE"`
	AuthRateLimit float64       `mapstructure:"AUTH_RATE_LIMIT"`
}

var defaults = map[string]interface{}{
	"PORT":            "5001",
	"ENV":             "development",
	"DB_DRIVER":       "postgres",
	"DB_PATH":         "instamini.db",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "postgres",
	"DB_PASSWORD":     "",
	"DB_NAME":         "socialdb",
	"DB_SSLMODE":      "disable",
	"SESSION_SECRET":  DefaultSessionSecret,
	"SESSION_TTL":     "168h",
	"REDIS_URL":       "",
	"UPLOAD_DIR":      "static/uploads",
	"BAD_WORDS_FILE":  "bad_words.txt",
	"ADMIN_PASSWORD":  "123",
	"LOG_LEVEL":       "info",
	"LOG_FILE":        "server.log",
	"AUTH_RATE_LIMIT": 5.0,
}

// Load reads .env (if present) and the environment on top of the defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.IsProduction() && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
