package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovl11/club-payment/internal/api"
	"github.com/ovl11/club-payment/internal/core/ports"
	"github.com/ovl11/club-payment/internal/core/service"
	"github.com/ovl11/club-payment/internal/infrastructure/config"
	"github.com/ovl11/club-payment/internal/infrastructure/eventlog"
	"github.com/ovl11/club-payment/internal/infrastructure/memory"
	"github.com/ovl11/club-payment/internal/infrastructure/stripe"
	"github.com/ovl11/club-payment/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var generateToken = memory.GenerateToken

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "club-payment",
	})

	users := memory.NewUserStore()
	devices := memory.NewDeviceRegistry()
	if err := seedAdmin(users, cfg.Admin, log); err != nil {
		return err
	}

	processor := stripe.NewProcessor(stripe.Config{
		SecretKey: cfg.Stripe.SecretKey,
		URL:       cfg.Stripe.APIURL,
		Timeout:   cfg.Stripe.Timeout,
	}, log)

	// Leave the interface nil so the webhook service reports the missing
	// secret instead of failing every signature.
	var verifier ports.WebhookVerifier
	if cfg.Stripe.WebhookSecret != "" {
		verifier = stripe.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
	} else {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET not set; /webhook will reject all events")
	}

	if cfg.InsecureHeaderAuth {
		log.Warn().Msg("AUTH_INSECURE_HEADERS enabled; identity headers are trusted without verification")
	}

	payments := service.NewPaymentService(users, devices, processor, service.PaymentOptions{
		Organization: cfg.Payment.Organization,
		Description:  cfg.Payment.Description,
		Timeout:      cfg.Stripe.Timeout,
	}, log)
	webhooks := service.NewWebhookService(verifier, eventlog.NewFileLog(cfg.Payment.WebhookLogPath), log)

	e := api.NewRouter(api.Dependencies{
		Log:                        log,
		Auth:                       service.NewAuthService(users, log),
		Payments:                   payments,
		Admin:                      service.NewAdminService(users, devices, log),
		Webhooks:                   webhooks,
		AllowOrigins:               cfg.Origins(),
		HeaderAuth:                 cfg.InsecureHeaderAuth,
		ConnectionTokenRequireAuth: cfg.ConnectionTokenRequireAuth,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
