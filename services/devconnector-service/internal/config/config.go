// Package config loads the devconnector service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/devconnector-api/shared/database"
	"github.com/vasapolrittideah/devconnector-api/shared/discovery"
	"github.com/vasapolrittideah/devconnector-api/shared/logger"
	"github.com/vasapolrittideah/devconnector-api/shared/mailer"
	"github.com/vasapolrittideah/devconnector-api/shared/middleware"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
)

// DevconnectorServiceConfig holds the service configuration. It is read once at startup.
type DevconnectorServiceConfig struct {
	ServiceName     string        `env:"SERVICE_NAME"     envDefault:"devconnector-service"`
	Port            string        `env:"PORT"             envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// TrustProxyHeaders lets X-Forwarded-For and X-Real-IP override the remote address.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	Mongo     database.MongoConfig       `envPrefix:"MONGO_"`
	Token     TokenConfig                `envPrefix:"JWT_"`
	Password  PasswordConfig             `envPrefix:"PASSWORD_"`
	SMTP      mailer.Config              `envPrefix:"SMTP_"`
	Consul    discovery.Config           `envPrefix:"CONSUL_"`
	RateLimit middleware.RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Log       logger.Config              `envPrefix:"LOG_"`
}

// TokenConfig configures bearer token issuance.
type TokenConfig struct {
	Secret    string        `env:"SECRET,required"`
	Issuer    string        `env:"ISSUER"     envDefault:"devconnector-api"`
	Audience  string        `env:"AUDIENCE"   envDefault:"devconnector-api"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"10h"`
}

// PasswordConfig selects the password hashing algorithm.
type PasswordConfig struct {
	Algorithm  string `env:"ALGORITHM"   envDefault:"bcrypt"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`
}

// NewDevconnectorServiceConfig parses the configuration from the process environment.
func NewDevconnectorServiceConfig() (*DevconnectorServiceConfig, error) {
	return parse(env.Options{})
}

// LoadFromMap parses the configuration from the given variables only.
func LoadFromMap(vars map[string]string) (*DevconnectorServiceConfig, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*DevconnectorServiceConfig, error) {
	cfg, err := env.ParseAsWithOptions[DevconnectorServiceConfig](opts)
	if err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the values the tags cannot express.
func (c *DevconnectorServiceConfig) validate() error {
	if c.Token.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}

	switch c.Password.Algorithm {
	case security.AlgorithmBcrypt, security.AlgorithmArgon2id:
	default:
		return fmt.Errorf("unsupported PASSWORD_ALGORITHM %q", c.Password.Algorithm)
	}

	if err := c.SMTP.Validate(); err != nil {
		return err
	}

	return nil
}
