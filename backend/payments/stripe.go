package payments

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Price and currency are server-side constants; the client can never
// supply its own amount.
const (
	PremiumPriceCents int64 = 1000
	PremiumCurrency         = "usd"
	PremiumItemName         = "Digital Life Lessons - Premium Access"
)

type Session struct {
	ID  string
	URL string
}

type SessionInput struct {
	UserID    string
	UserName  string
	UserEmail string
}

// SessionCreator creates a hosted checkout session for a premium upgrade.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, in SessionInput) (*Session, error)
}

// StripeCheckout delegates session creation to Stripe.
type StripeCheckout struct {
	api        *client.API
	siteDomain string
}

func NewStripeCheckout(secretKey, siteDomain string) *StripeCheckout {
	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			HTTPClient: &http.Client{Timeout: 15 * time.Second},
		}),
	})
	return &StripeCheckout{api: api, siteDomain: siteDomain}
}

func (s *StripeCheckout) CreateCheckoutSession(ctx context.Context, in SessionInput) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(in.UserEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(PremiumCurrency),
					UnitAmount: stripe.Int64(PremiumPriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(PremiumItemName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.siteDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.siteDomain + "/payment-cancelled"),
	}
	params.Context = ctx
	params.AddMetadata("userId", in.UserID)
	params.AddMetadata("userName", in.UserName)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}
