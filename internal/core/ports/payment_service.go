package ports

import (
	"context"
	"encoding/json"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// CreateIntentInput is the raw charge request as received from the terminal.
type CreateIntentInput struct {
	AmountCents json.RawMessage
	Currency    string
	Item        string
	DeviceID    string
}

// IntentResult is returned to the terminal so its SDK can collect the card.
type IntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
}

type PaymentService interface {
	ConnectionToken(ctx context.Context) (string, error)
	CreateIntent(ctx context.Context, actor domain.User, in CreateIntentInput) (*IntentResult, error)
}
