package ports

import (
	"context"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// PaymentProcessor is the remote payment API. Implementations must not retry
// CreatePaymentIntent on their own and must report failures as domain.Upstream
// errors when the processor supplied a message.
type PaymentProcessor interface {
	CreateConnectionToken(ctx context.Context) (string, error)
	CreatePaymentIntent(ctx context.Context, req domain.PaymentIntentRequest) (*domain.PaymentIntent, error)
}

// WebhookVerifier checks a webhook body against its signature header and
// decodes it. Failures wrap domain.ErrInvalidSignature or
// domain.ErrInvalidPayload.
type WebhookVerifier interface {
	ConstructEvent(payload []byte, signatureHeader string) (domain.WebhookEvent, error)
}

// EventLog is an append-only sink for webhook events.
type EventLog interface {
	Append(event domain.WebhookEvent) error
}
