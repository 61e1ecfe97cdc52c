// Package metrics defines the Prometheus collectors for the payment API.
// HTTP request metrics come from echoprometheus; the collectors here count
// business outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubpay"

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsCreatedTotal counts intents the processor accepted.
// Label:
//   - currency: lower-case ISO code (e.g. "eur")
var PaymentIntentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_created_total",
		Help:      "Total number of payment intents created.",
	},
	[]string{"currency"},
)

// PaymentIntentAmountCentsTotal sums the amounts of created intents.
var PaymentIntentAmountCentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intent_amount_cents_total",
		Help:      "Sum of created payment intent amounts in minor units.",
	},
	[]string{"currency"},
)

// PaymentIntentsRejectedTotal counts intent requests that failed.
// Label:
//   - reason: "validation", "unauthorized", "forbidden", "not_found", "upstream" or "internal"
var PaymentIntentsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_rejected_total",
		Help:      "Total number of payment intent requests that failed.",
	},
	[]string{"reason"},
)

// ProcessorRequestDuration measures calls to the payment processor.
// Label:
//   - operation: "create_intent" or "connection_token"
var ProcessorRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processor_request_duration_seconds",
		Help:      "Duration of payment processor requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookEventsTotal counts verified webhook events by type.
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of verified webhook events, by event type.",
	},
	[]string{"type"},
)

// WebhookRejectedTotal counts webhook deliveries that failed verification
// or could not be recorded.
var WebhookRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_rejected_total",
		Help:      "Total number of rejected webhook deliveries.",
	},
	[]string{"reason"},
)
