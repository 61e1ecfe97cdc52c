package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/infrastructure/config"
	"github.com/ovl11/club-payment/internal/infrastructure/memory"
	"github.com/ovl11/club-payment/internal/pkg/password"
)

// seedAdmin creates the configured administrator. Without ADMIN_API_TOKEN
// nothing is created and the store stays empty.
func seedAdmin(users *memory.UserStore, cfg config.AdminConfig, log zerolog.Logger) error {
	if cfg.Token == "" {
		log.Warn().Msg("ADMIN_API_TOKEN not set; no administrator seeded")
		return nil
	}

	nu := domain.NewUser{
		Name:     cfg.Name,
		APIToken: cfg.Token,
		Username: cfg.Username,
	}
	if cfg.Password != "" {
		hash, err := password.Hash(cfg.Password)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		nu.PasswordHash = hash
	}

	u, created, err := users.Bootstrap(nu)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info().Int64("user_id", u.ID).Str("name", u.Name).Msg("administrator seeded")
	}
	return nil
}
