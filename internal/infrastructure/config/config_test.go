package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STRIPE_SECRET_KEY": "sk_test_dummy",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.Admin.Name != "Admin" {
		t.Errorf("expected default admin name, got %q", cfg.Admin.Name)
	}
	if cfg.Stripe.Timeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %s", cfg.Stripe.Timeout)
	}
	if cfg.Payment.WebhookLogPath != "payments.log" {
		t.Errorf("unexpected log path %q", cfg.Payment.WebhookLogPath)
	}
	if cfg.Payment.Organization != "DARC e.V. OV L11" {
		t.Errorf("unexpected organization %q", cfg.Payment.Organization)
	}
	if got := cfg.Origins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("expected wildcard origins, got %v", got)
	}
	if cfg.InsecureHeaderAuth {
		t.Errorf("insecure header auth must default to off")
	}
}

func TestLoadWith_MissingStripeKey(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when STRIPE_SECRET_KEY is missing")
	}
}

func TestLoadWith_AdminCredentialsTogether(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STRIPE_SECRET_KEY": "sk_test_dummy",
		"ADMIN_USERNAME":    "admin",
	}))
	if err == nil {
		t.Fatalf("expected error when only ADMIN_USERNAME is set")
	}
}

func TestOrigins(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STRIPE_SECRET_KEY": "sk_test_dummy",
		"ALLOWED_ORIGINS":   " http://localhost , ,https://pos.example.org",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}

	got := cfg.Origins()
	if len(got) != 2 || got[0] != "http://localhost" || got[1] != "https://pos.example.org" {
		t.Fatalf("unexpected origins: %v", got)
	}
}
