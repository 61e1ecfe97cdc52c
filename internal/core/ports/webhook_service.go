package ports

import (
	"context"

	"github.com/ovl11/club-payment/internal/core/domain"
)

type WebhookService interface {
	Receive(ctx context.Context, payload []byte, signatureHeader string) (domain.WebhookEvent, error)
}
