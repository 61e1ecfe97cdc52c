// Package stripe adapts the Stripe API to the payment ports.
package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/ovl11/club-payment/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Config captures what is needed to talk to Stripe.
type Config struct {
	SecretKey string
	// URL overrides the API base URL; empty means api.stripe.com.
	URL     string
	Timeout time.Duration
}

// Processor creates terminal connection tokens and card-present payment
// intents. Network retries are disabled: a payment intent must never be
// created twice behind the caller's back.
type Processor struct {
	api *client.API
	log zerolog.Logger
}

func NewProcessor(cfg Config, log zerolog.Logger) *Processor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	backend := func(bt stripe.SupportedBackend) stripe.Backend {
		bc := &stripe.BackendConfig{
			HTTPClient:        httpClient,
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     leveledLogger{log: log},
		}
		if cfg.URL != "" {
			bc.URL = stripe.String(cfg.URL)
		}
		return stripe.GetBackendWithConfig(bt, bc)
	}

	backends := &stripe.Backends{
		API:     backend(stripe.APIBackend),
		Connect: backend(stripe.ConnectBackend),
		Uploads: backend(stripe.UploadsBackend),
	}

	return &Processor{api: client.New(cfg.SecretKey, backends), log: log}
}

func (p *Processor) CreateConnectionToken(ctx context.Context) (string, error) {
	params := &stripe.TerminalConnectionTokenParams{}
	params.Context = ctx

	token, err := p.api.TerminalConnectionTokens.New(params)
	if err != nil {
		return "", p.upstream(err, "create connection token")
	}
	return token.Secret, nil
}

func (p *Processor) CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountCents),
		Currency:           stripe.String(req.Currency),
		Description:        stripe.String(req.Description),
		PaymentMethodTypes: stripe.StringSlice([]string{"card_present"}),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodAutomatic)),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, p.upstream(err, "create payment intent")
	}
	return &domain.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, AmountCents: pi.Amount}, nil
}

// upstream logs the full Stripe error and returns the message the client sees.
func (p *Processor) upstream(err error, op string) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		p.log.Error().
			Str("op", op).
			Str("type", string(se.Type)).
			Str("code", string(se.Code)).
			Str("request_id", se.RequestID).
			Int("status", se.HTTPStatusCode).
			Msg(se.Msg)
		if se.Msg != "" {
			de := &domain.Error{Kind: domain.ErrUpstream, Message: se.Msg}
			if se.Code != "" {
				de.Extra = map[string]any{"code": string(se.Code)}
			}
			return de
		}
	} else {
		p.log.Error().Err(err).Str("op", op).Msg("stripe request failed")
	}
	return domain.Upstream(err.Error())
}

// leveledLogger routes stripe-go's internal logging through zerolog.
type leveledLogger struct {
	log zerolog.Logger
}

func (l leveledLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Infof(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l leveledLogger) Warnf(format string, v ...interface{}) { l.log.Warn().Msgf(format, v...) }
func (l leveledLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
