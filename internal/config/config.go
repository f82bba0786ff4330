package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"

	// AuthTrust takes the owner email from the request as given.
	AuthTrust = "trust"
	// AuthToken requires a bearer ID token and takes the email from it.
	AuthToken = "token"
)

type Config struct {
	Port     string `env:"PORT,default=5000"`
	HTTPAddr string `env:"HTTP_ADDR"`

	Store           string `env:"NOTES_STORE,default=mongo"`
	DatabaseURL     string `env:"DATABASE_URL"`
	MongoDatabase   string `env:"MONGO_DATABASE,default=userNote"`
	MongoCollection string `env:"MONGO_COLLECTION,default=info"`
	BoltPath        string `env:"BOLT_PATH,default=notes.db"`

	CORSOrigins          string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	CORSAllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS,default=false"`

	AuthMode        string `env:"AUTH_MODE,default=trust"`
	AuthTokenSecret string `env:"AUTH_TOKEN_SECRET"`
	AuthTokenIssuer string `env:"AUTH_TOKEN_ISSUER,default=notes-local"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load reads an optional .env file, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo, StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store %q", c.Store)
		}
	case StoreBolt:
		if c.BoltPath == "" {
			return errors.New("BOLT_PATH is required for store \"bolt\"")
		}
	default:
		return fmt.Errorf("unknown NOTES_STORE %q", c.Store)
	}

	switch c.AuthMode {
	case AuthTrust:
	case AuthToken:
		if c.AuthTokenSecret == "" {
			return errors.New("AUTH_TOKEN_SECRET is required when AUTH_MODE=token")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}
	return nil
}

// Addr is HTTP_ADDR when set, otherwise ":" + PORT.
func (c Config) Addr() string {
	if c.HTTPAddr != "" {
		return c.HTTPAddr
	}
	return ":" + c.Port
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
