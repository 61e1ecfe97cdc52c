package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins is a comma-separated CORS allow-list.
	AllowedOrigins string `env:"ALLOWED_ORIGINS, default=*"`

	// InsecureHeaderAuth trusts X-User-Id / X-User-Role instead of bearer
	// tokens. Development only.
	InsecureHeaderAuth bool `env:"AUTH_INSECURE_HEADERS, default=false"`

	ConnectionTokenRequireAuth bool `env:"CONNECTION_TOKEN_REQUIRE_AUTH, default=false"`

	Stripe  StripeConfig
	Admin   AdminConfig
	Payment PaymentConfig
}

type StripeConfig struct {
	SecretKey     string        `env:"STRIPE_SECRET_KEY, required"`
	WebhookSecret string        `env:"STRIPE_WEBHOOK_SECRET"`
	APIURL        string        `env:"STRIPE_API_URL"`
	Timeout       time.Duration `env:"PROCESSOR_TIMEOUT, default=15s"`
}

// AdminConfig seeds the first administrator. Nothing is seeded when Token is
// empty.
type AdminConfig struct {
	Token    string `env:"ADMIN_API_TOKEN"`
	Name     string `env:"ADMIN_NAME, default=Admin"`
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

type PaymentConfig struct {
	Organization   string `env:"ORGANIZATION_LABEL,  default=DARC e.V. OV L11"`
	Description    string `env:"PAYMENT_DESCRIPTION, default=DARC e.V. OV L11 Getränke"`
	WebhookLogPath string `env:"WEBHOOK_LOG_PATH,    default=payments.log"`
}

// Load reads configuration from the process environment. A missing
// STRIPE_SECRET_KEY is an error.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if (cfg.Admin.Username == "") != (cfg.Admin.Password == "") {
		return nil, fmt.Errorf("config: ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins, falling back to the wildcard.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// Development reports whether human-friendly logging should be used.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}
