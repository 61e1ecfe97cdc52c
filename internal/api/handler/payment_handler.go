package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/api/metrics"
	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// PaymentHandler serves the terminal-facing payment routes.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createIntentRequest struct {
	AmountCents json.RawMessage `json:"amount_cents"`
	Currency    string          `json:"currency"`
	Item        string          `json:"item"`
	Device      string          `json:"device"`
	AndroidID   string          `json:"android_id"`
	DeviceID    string          `json:"device_id"`

	// Kassierer is accepted for older terminals and ignored; the cashier
	// name always comes from the device owner.
	Kassierer string `json:"kassierer"`
}

type connectionTokenResponse struct {
	Secret string `json:"secret"`
}

// ConnectionToken handles POST /terminal/connection_token.
//
// @Summary      Create a Stripe Terminal connection token
// @Tags         terminal
// @Produce      json
// @Success      200  {object}  connectionTokenResponse
// @Failure      500  {object}  api.errorResponse
// @Router       /terminal/connection_token [post]
func (h *PaymentHandler) ConnectionToken(c echo.Context) error {
	start := time.Now()
	secret, err := h.service.ConnectionToken(c.Request().Context())
	metrics.ProcessorRequestDuration.WithLabelValues("connection_token").Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, connectionTokenResponse{Secret: secret})
}

// CreateIntent handles POST /pos/create_intent.
//
// @Summary      Create a card-present payment intent
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIntentRequest  true  "Charge request"
// @Success      200   {object}  ports.IntentResult
// @Failure      400   {object}  api.errorResponse
// @Failure      401   {object}  api.errorResponse
// @Failure      403   {object}  api.errorResponse
// @Failure      500   {object}  api.errorResponse
// @Router       /pos/create_intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createIntentRequest
	if err := bindJSON(c, &req); err != nil {
		metrics.PaymentIntentsRejectedTotal.WithLabelValues(errorReason(err)).Inc()
		return err
	}

	start := time.Now()
	res, err := h.service.CreateIntent(c.Request().Context(), actor, ports.CreateIntentInput{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Item:        req.Item,
		DeviceID:    firstNonEmpty(req.Device, req.AndroidID, req.DeviceID),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			metrics.ProcessorRequestDuration.WithLabelValues("create_intent").Observe(time.Since(start).Seconds())
		}
		metrics.PaymentIntentsRejectedTotal.WithLabelValues(errorReason(err)).Inc()
		return err
	}
	metrics.ProcessorRequestDuration.WithLabelValues("create_intent").Observe(time.Since(start).Seconds())

	currency := strings.ToLower(strings.TrimSpace(firstNonEmpty(req.Currency, domain.DefaultCurrency)))
	metrics.PaymentIntentsCreatedTotal.WithLabelValues(currency).Inc()
	metrics.PaymentIntentAmountCentsTotal.WithLabelValues(currency).Add(float64(res.AmountCents))

	return c.JSON(http.StatusOK, res)
}

// errorReason maps an error onto the metrics reason label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream"
	default:
		return "internal"
	}
}
