package domain

// Metadata keys attached to every payment intent.
const (
	MetaClub    = "club"
	MetaItem    = "item"
	MetaCashier = "kassierer"
	MetaDevice  = "device"
	MetaUserID  = "user_id"
	MetaRole    = "role"
)

const (
	DefaultItem     = "unknown"
	DefaultCurrency = "eur"
)

// PaymentIntentRequest is what the orchestrator asks the processor to create.
type PaymentIntentRequest struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// PaymentIntent is the processor's handle for a card-present charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
}

// WebhookEvent is the verified envelope of a processor notification.
type WebhookEvent struct {
	ID      string
	Type    string
	Created int64
}
