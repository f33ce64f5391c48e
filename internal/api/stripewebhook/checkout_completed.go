package stripewebhooks

import (
	"context"
	"errors"
	"time"

	"folkify/database"
	"folkify/internal/apperr"
	"folkify/internal/domain/purchases"
	"folkify/internal/infra/payments"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted marks the purchase behind session as paid.
// Only storage failures are returned; events that can never apply are
// acknowledged so Stripe stops retrying them.
func handleCheckoutSessionCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	purchaseID := payments.PurchaseID(session)
	if purchaseID == "" {
		log.Warn().Str("session_id", session.ID).Msg("checkout session without purchase reference")
		return nil
	}
	if !payments.Paid(session) {
		log.Info().
			Str("session_id", session.ID).
			Str("purchase_id", purchaseID).
			Str("payment_status", string(session.PaymentStatus)).
			Msg("checkout completed, payment still pending")
		return nil
	}

	p, changed, err := purchases.RecordPayment(ctx, database.DB, purchaseID, time.Now().UTC())
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn().Str("purchase_id", purchaseID).Msg("paid checkout for unknown purchase")
		return nil
	case stateConflict(err):
		log.Warn().Err(err).Str("purchase_id", purchaseID).Msg("payment received for cancelled purchase")
		return nil
	case err != nil:
		return err
	}

	log.Info().
		Str("purchase_id", p.ID).
		Str("session_id", session.ID).
		Bool("changed", changed).
		Msg("purchase paid")
	return nil
}

func stateConflict(err error) bool {
	typed := apperr.As(err)
	return typed != nil && typed.Code() == apperr.CodeStateConflict
}
