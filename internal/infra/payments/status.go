package payments

import (
	"strings"

	"github.com/stripe/stripe-go/v75"
)

// Paid reports whether a completed checkout session actually collected money.
// Delayed methods complete with "unpaid" and settle later.
func Paid(s *stripe.CheckoutSession) bool {
	if s == nil {
		return false
	}
	switch stripe.CheckoutSessionPaymentStatus(strings.TrimSpace(string(s.PaymentStatus))) {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return true
	default:
		return false
	}
}

// PurchaseID returns the purchase a checkout session belongs to.
func PurchaseID(s *stripe.CheckoutSession) string {
	if s == nil {
		return ""
	}
	if s.Metadata != nil {
		if id := strings.TrimSpace(s.Metadata["purchase_id"]); id != "" {
			return id
		}
	}
	return strings.TrimSpace(s.ClientReferenceID)
}
