package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

const defaultProcessorTimeout = 15 * time.Second

// PaymentOptions are the fixed labels stamped on every intent.
type PaymentOptions struct {
	Organization string
	Description  string
	Timeout      time.Duration
}

type PaymentService struct {
	users     ports.CredentialStore
	devices   ports.DeviceRegistry
	processor ports.PaymentProcessor
	opts      PaymentOptions
	log       zerolog.Logger
}

func NewPaymentService(
	users ports.CredentialStore,
	devices ports.DeviceRegistry,
	processor ports.PaymentProcessor,
	opts PaymentOptions,
	log zerolog.Logger,
) *PaymentService {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProcessorTimeout
	}
	return &PaymentService{users: users, devices: devices, processor: processor, opts: opts, log: log}
}

// ConnectionToken asks the processor for a terminal connection token.
func (s *PaymentService) ConnectionToken(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.processor.CreateConnectionToken(ctx)
}

// CreateIntent validates a charge request from a terminal, checks that the
// device belongs to the actor and creates a card-present payment intent.
// The processor is called at most once.
func (s *PaymentService) CreateIntent(ctx context.Context, actor domain.User, in ports.CreateIntentInput) (*ports.IntentResult, error) {
	// 1. Amount.
	amount, ok := domain.CoerceInt(in.AmountCents)
	if !ok || amount <= 0 {
		return nil, domain.Validation("amount_cents must be a positive integer in minor units")
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	if !isCurrencyCode(currency) {
		return nil, domain.Validation("currency must be a three-letter ISO code")
	}

	// 2. Device.
	deviceID := strings.TrimSpace(in.DeviceID)
	if deviceID == "" {
		return nil, domain.Validation("device is required")
	}

	// 3–5. Ownership.
	assignment, ok := s.devices.Get(deviceID)
	if !ok {
		return nil, domain.Forbidden("device not registered")
	}
	owner, ok := s.users.GetByID(assignment.UserID)
	if !ok {
		s.log.Warn().Str("device", deviceID).Int64("user_id", assignment.UserID).Msg("device assigned to missing user")
		return nil, domain.Validation("assigned user no longer exists")
	}
	if owner.ID != actor.ID {
		return nil, domain.Forbidden("device does not belong to the authenticated user")
	}

	// 6. Metadata.
	item := in.Item
	if item == "" {
		item = domain.DefaultItem
	}
	req := domain.PaymentIntentRequest{
		AmountCents: amount,
		Currency:    currency,
		Description: s.opts.Description,
		Metadata: map[string]string{
			domain.MetaClub:    s.opts.Organization,
			domain.MetaItem:    item,
			domain.MetaCashier: owner.Name,
			domain.MetaDevice:  deviceID,
			domain.MetaUserID:  strconv.FormatInt(owner.ID, 10),
			domain.MetaRole:    string(owner.Role),
		},
	}

	// 7. Processor.
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	intent, err := s.processor.CreatePaymentIntent(callCtx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("intent_id", intent.ID).
		Int64("amount_cents", intent.AmountCents).
		Str("currency", currency).
		Str("device", deviceID).
		Int64("user_id", owner.ID).
		Msg("payment intent created")

	return &ports.IntentResult{ID: intent.ID, ClientSecret: intent.ClientSecret, AmountCents: intent.AmountCents}, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
