package config

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort string `envconfig:"PORT" default:"5000"`

	MongoURI  string `envconfig:"MONGODB_URI" required:"true"`
	MongoDB   string `envconfig:"MONGODB_DB" default:"tourGuideDB"`
	DBTimeout int    `envconfig:"DB_TIMEOUT_SEC" default:"5"`

	JWTSecret     string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	JWTExpiresMin int    `envconfig:"JWT_EXPIRES_MIN" default:"120"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// Redis is optional; empty addr keeps events in-process.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	BootstrapAdmins []string `envconfig:"BOOTSTRAP_ADMINS"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	// envconfig accepts a required key that is set but empty
	if c.MongoURI == "" || c.JWTSecret == "" {
		return c, errors.New("MONGODB_URI and ACCESS_TOKEN_SECRET must not be empty")
	}

	// token emails are lowercased, so seeded admins must be too
	admins := c.BootstrapAdmins[:0]
	for _, a := range c.BootstrapAdmins {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			admins = append(admins, a)
		}
	}
	c.BootstrapAdmins = admins
	return c, nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresMin) * time.Minute
}

func (c Config) OpTimeout() time.Duration {
	return time.Duration(c.DBTimeout) * time.Second
}
