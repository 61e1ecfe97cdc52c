package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// WebhookService verifies processor notifications and records them.
type WebhookService struct {
	verifier ports.WebhookVerifier
	events   ports.EventLog
	log      zerolog.Logger
}

// NewWebhookService returns a service that rejects everything when verifier
// is nil, i.e. no signing secret is configured.
func NewWebhookService(verifier ports.WebhookVerifier, events ports.EventLog, log zerolog.Logger) *WebhookService {
	return &WebhookService{verifier: verifier, events: events, log: log}
}

func (s *WebhookService) Receive(_ context.Context, payload []byte, signatureHeader string) (domain.WebhookEvent, error) {
	if s.verifier == nil {
		return domain.WebhookEvent{}, domain.Validation("Webhook secret not configured")
	}

	ev, err := s.verifier.ConstructEvent(payload, signatureHeader)
	switch {
	case errors.Is(err, domain.ErrInvalidSignature):
		s.log.Warn().Err(err).Msg("webhook signature rejected")
		return domain.WebhookEvent{}, domain.Validation("Invalid signature")
	case errors.Is(err, domain.ErrInvalidPayload):
		s.log.Warn().Err(err).Msg("webhook payload rejected")
		return domain.WebhookEvent{}, domain.Validation("Invalid payload")
	case err != nil:
		return domain.WebhookEvent{}, fmt.Errorf("verify webhook: %w", err)
	}

	s.log.Info().Str("event_id", ev.ID).Str("type", ev.Type).Msg("webhook event received")

	if err := s.events.Append(ev); err != nil {
		return domain.WebhookEvent{}, fmt.Errorf("record webhook event: %w", err)
	}
	return ev, nil
}
