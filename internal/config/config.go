package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Auth      AuthConfig
	Redis     RedisConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type FirestoreConfig struct {
	ProjectID       string `envconfig:"FIRESTORE_PROJECT_ID"`
	CredentialsPath string `envconfig:"FIRESTORE_CREDENTIALS_PATH"`
}

type AuthConfig struct {
	// SecretKey signs bearer tokens. It has no default on purpose:
	// startup must fail when it is unset.
	SecretKey string        `envconfig:"AUTH_SECRET_KEY"`
	TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"168h"`
}

type RedisConfig struct {
	// URL of the cache. Empty disables caching; reads then go straight
	// to the store.
	URL string `envconfig:"REDIS_URL"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

var (
	ErrMissingSecretKey = errors.New("AUTH_SECRET_KEY must be set")
	ErrMissingProjectID = errors.New("FIRESTORE_PROJECT_ID must be set")
)

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Auth.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if cfg.Firestore.ProjectID == "" {
		return nil, ErrMissingProjectID
	}
	return &cfg, nil
}
