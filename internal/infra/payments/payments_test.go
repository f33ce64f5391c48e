package payments

import (
	"errors"
	"testing"

	"folkify/internal/domain/purchases"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func samplePurchase() purchases.Purchase {
	return purchases.Purchase{
		ID:           "p-1",
		ArtworkID:    "aw-1",
		BuyerID:      "b-1",
		ArtworkTitle: "Gond Tree",
		ImageURL:     "https://img.test/gond.jpg",
		Price:        decimal.RequireFromString("4599.50"),
		Currency:     "INR",
		BuyerEmail:   "asha@example.com",
	}
}

func TestMinorUnits(t *testing.T) {
	assert.EqualValues(t, 459950, MinorUnits(decimal.RequireFromString("4599.50")))
	assert.EqualValues(t, 120000, MinorUnits(decimal.NewFromInt(1200)))
	assert.EqualValues(t, 1, MinorUnits(decimal.RequireFromString("0.005")))
}

func TestCheckoutParams(t *testing.T) {
	c := NewClient("sk_test", "https://folkify.test/", "INR")
	params := c.CheckoutParams(samplePurchase())

	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Equal(t, "p-1", *params.ClientReferenceID)
	assert.Equal(t, "https://folkify.test/purchases/p-1?paid=1", *params.SuccessURL)
	require.Len(t, params.LineItems, 1)

	item := params.LineItems[0]
	assert.EqualValues(t, 1, *item.Quantity)
	assert.Equal(t, "inr", *item.PriceData.Currency)
	assert.EqualValues(t, 459950, *item.PriceData.UnitAmount)
	assert.Equal(t, "Gond Tree", *item.PriceData.ProductData.Name)
	assert.Equal(t, "p-1", params.Metadata["purchase_id"])
}

func TestCheckoutParamsUsesPurchaseCurrency(t *testing.T) {
	c := NewClient("sk_test", "https://folkify.test", "inr")

	p := samplePurchase()
	p.Currency = "USD"
	p.Price = decimal.NewFromInt(100)
	item := c.CheckoutParams(p).LineItems[0]
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.EqualValues(t, 10000, *item.PriceData.UnitAmount)

	p.Currency = ""
	item = c.CheckoutParams(p).LineItems[0]
	assert.Equal(t, "inr", *item.PriceData.Currency)
}

func TestCreateCheckout(t *testing.T) {
	c := NewClient("sk_test", "https://folkify.test", "inr")
	var seen *stripe.CheckoutSessionParams
	c.create = func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		seen = p
		return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"}, nil
	}

	out, err := c.CreateCheckout(samplePurchase())
	require.NoError(t, err)
	assert.Equal(t, "cs_1", out.SessionID)
	require.NotNil(t, seen)

	c.create = func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("card network down")
	}
	_, err = c.CreateCheckout(samplePurchase())
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	assert.False(t, NewClient("", "", "").Enabled())
	assert.True(t, NewClient("sk", "", "").Enabled())
}

func TestPaidAndPurchaseID(t *testing.T) {
	assert.False(t, Paid(nil))
	assert.True(t, Paid(&stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid}))
	assert.False(t, Paid(&stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}))

	assert.Equal(t, "p-9", PurchaseID(&stripe.CheckoutSession{ClientReferenceID: "p-9"}))
	assert.Equal(t, "p-2", PurchaseID(&stripe.CheckoutSession{
		ClientReferenceID: "p-9",
		Metadata:          map[string]string{"purchase_id": "p-2"},
	}))
}
