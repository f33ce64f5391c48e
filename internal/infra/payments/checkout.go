package payments

import (
	"strings"

	"folkify/internal/domain/purchases"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// Checkout is the hosted payment page opened for a purchase.
type Checkout struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// Client creates Stripe checkout sessions for purchases.
type Client struct {
	secretKey string
	appURL    string
	currency  string
	create    func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func NewClient(secretKey, appURL, currency string) *Client {
	return &Client{
		secretKey: secretKey,
		appURL:    strings.TrimRight(appURL, "/"),
		currency:  strings.ToLower(currency),
		create:    checkoutsession.New,
	}
}

// Default is the client used by the HTTP handlers; main sets it at startup.
var Default *Client

func (c *Client) Enabled() bool {
	return c != nil && c.secretKey != ""
}

// MinorUnits converts a major-unit amount into the smallest currency unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// CheckoutParams builds a one-off payment session for p, charged in the
// purchase's own currency. The configured currency only fills in for
// purchases that carry none. The purchase id is carried as client reference
// and metadata so the webhook can find it.
func (c *Client) CheckoutParams(p purchases.Purchase) *stripe.CheckoutSessionParams {
	currency := strings.ToLower(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = c.currency
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(p.ArtworkTitle),
	}
	if p.ImageURL != "" {
		product.Images = []*string{stripe.String(p.ImageURL)}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.appURL + "/purchases/" + p.ID + "?paid=1"),
		CancelURL:         stripe.String(c.appURL + "/purchases/" + p.ID + "?canceled=1"),
		ClientReferenceID: stripe.String(p.ID),
		CustomerEmail:     stripe.String(p.BuyerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(currency),
					UnitAmount:  stripe.Int64(MinorUnits(p.Price)),
					ProductData: product,
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("purchase_id", p.ID)
	params.AddMetadata("artwork_id", p.ArtworkID)
	params.AddMetadata("buyer_id", p.BuyerID)
	return params
}

// CreateCheckout opens a checkout session for p.
func (c *Client) CreateCheckout(p purchases.Purchase) (*Checkout, error) {
	stripe.Key = c.secretKey
	s, err := c.create(c.CheckoutParams(p))
	if err != nil {
		return nil, err
	}
	return &Checkout{SessionID: s.ID, URL: s.URL}, nil
}

// SetCreator replaces the Stripe session constructor, for callers that stub
// the network in tests.
func (c *Client) SetCreator(fn func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)) {
	c.create = fn
}
