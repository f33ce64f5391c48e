package stripewebhooks

import (
	"encoding/json"
	"io"
	"net/http"

	"folkify/config"
	"folkify/internal/app/http/respond"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxPayloadBytes = 65536

// POST /webhook
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		respond.FailWith(c, http.StatusInternalServerError, "STRIPE_WEBHOOK_SECRET not configured")
		return
	}

	payload, err := readStripeBody(c, maxPayloadBytes)
	if err != nil {
		respond.FailWith(c, http.StatusServiceUnavailable, "Error reading request body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Warn().Err(err).Msg("stripe signature verification failed")
		respond.FailWith(c, http.StatusBadRequest, "Signature verification failed")
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			respond.FailWith(c, http.StatusBadRequest, "Failed to parse session")
			return
		}
		if err := handleCheckoutSessionCompleted(c.Request.Context(), &session); err != nil {
			// a 5xx makes Stripe retry the delivery
			log.Error().Err(err).Str("event_id", event.ID).Msg("checkout session handling failed")
			respond.FailWith(c, http.StatusInternalServerError, "Failed to record payment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	case "checkout.session.async_payment_failed", "checkout.session.expired":
		log.Info().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("checkout session not paid")
		c.JSON(http.StatusOK, gin.H{"status": "received"})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
