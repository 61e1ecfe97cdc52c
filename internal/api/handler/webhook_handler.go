package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ovl11/club-payment/internal/api/metrics"
	"github.com/ovl11/club-payment/internal/core/domain"
	"github.com/ovl11/club-payment/internal/core/ports"
)

// HeaderStripeSignature carries the webhook signature.
const HeaderStripeSignature = "Stripe-Signature"

// maxWebhookBytes matches the size Stripe recommends accepting.
const maxWebhookBytes = 64 << 10

type WebhookHandler struct {
	service ports.WebhookService
}

func NewWebhookHandler(service ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

type webhookResponse struct {
	Status string `json:"status"`
}

// Receive handles POST /webhook. The raw body is handed to the verifier
// untouched; it is never decoded before the signature checks out.
//
// @Summary      Receive a Stripe webhook
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Stripe signature header"
// @Success      200               {object}  webhookResponse
// @Failure      400               {object}  api.errorResponse
// @Router       /webhook [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBytes))
	if err != nil {
		metrics.WebhookRejectedTotal.WithLabelValues("payload").Inc()
		return domain.Validation("Invalid payload")
	}

	ev, err := h.service.Receive(c.Request().Context(), body, c.Request().Header.Get(HeaderStripeSignature))
	if err != nil {
		reason := "internal"
		if errors.Is(err, domain.ErrValidation) {
			reason = "verification"
		}
		metrics.WebhookRejectedTotal.WithLabelValues(reason).Inc()
		return err
	}

	metrics.WebhookEventsTotal.WithLabelValues(ev.Type).Inc()
	return c.JSON(http.StatusOK, webhookResponse{Status: "received"})
}
