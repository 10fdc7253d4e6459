package config

import (
	"context"
	"log/slog"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/wingden/loyalty-gateway/internal/model"
)

// Config is built once at process start and passed by reference into the
// upstream clients. It is never mutated afterwards.
type Config struct {
	RunAddr     string `env:"RUN_ADDRESS" envDefault:"localhost:5000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	RivoBaseURL string `env:"RIVO_BASE_URL" envDefault:"https://developer-api.rivo.io/merchant_api/v1"`
	RivoAPIKey  string `env:"RIVO_API_KEY" envDefault:""`

	ShopifyStore       string `env:"SHOPIFY_STORE" envDefault:""`
	ShopifyAccessToken string `env:"SHOPIFY_ACCESS_TOKEN" envDefault:""`

	ResendAPIKey  string `env:"RESEND_API_KEY" envDefault:""`
	ResendFrom    string `env:"RESEND_FROM" envDefault:"onboarding@resend.dev"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"Wing Den"`
}

func (c *Config) RivoConfigured() bool {
	return c.RivoAPIKey != ""
}

func (c *Config) ShopifyConfigured() bool {
	return c.ShopifyStore != "" && c.ShopifyAccessToken != ""
}

func (c *Config) EmailConfigured() bool {
	return c.ResendAPIKey != ""
}

// FromAddress composes the sender identity for outgoing email.
func (c *Config) FromAddress() string {
	return c.EmailFromName + " <" + c.ResendFrom + ">"
}

type Builder struct {
	cfg *Config
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		cfg: &Config{},
		log: log,
	}
}

// FromDotEnv loads a local .env file into the process environment if one
// exists. Real environment variables keep precedence.
func (b *Builder) FromDotEnv() *Builder {
	if err := godotenv.Load(); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelInfo, "no .env file found; using environment variables")
		return b
	}
	b.log.LogAttrs(context.Background(),
		slog.LevelInfo, "loaded .env configuration file")
	return b
}

func (b *Builder) FromEnv() *Builder {
	if err := env.Parse(b.cfg); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "failed to parse config",
			slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) GetConfig() *Config {
	return b.cfg
}
