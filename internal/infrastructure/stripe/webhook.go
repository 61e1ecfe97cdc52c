package stripe

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// WebhookVerifier checks Stripe-Signature headers against a shared secret.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// ConstructEvent verifies the signature before decoding the body. Events sent
// with a different API version are accepted; only id, type and creation time
// are read.
func (v *WebhookVerifier) ConstructEvent(payload []byte, header string) (domain.WebhookEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, header, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrNotSigned),
			errors.Is(err, webhook.ErrInvalidHeader),
			errors.Is(err, webhook.ErrNoValidSignature),
			errors.Is(err, webhook.ErrTooOld):
			return domain.WebhookEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		default:
			return domain.WebhookEvent{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
		}
	}
	return domain.WebhookEvent{ID: ev.ID, Type: string(ev.Type), Created: ev.Created}, nil
}
