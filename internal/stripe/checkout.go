package stripe

import (
	"context"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"zapshift/internal/service"
)

// CheckoutGateway implements service.PaymentGateway over Stripe hosted
// checkout sessions.
type CheckoutGateway struct {
	api *client.API
}

// NewCheckoutGateway creates a gateway client with the given API key.
func NewCheckoutGateway(apiKey string) *CheckoutGateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &CheckoutGateway{api: api}
}

// CreateCheckoutSession opens a hosted payment session carrying the parcel
// id and name as opaque metadata and returns its redirect URL.
func (g *CheckoutGateway) CreateCheckoutSession(ctx context.Context, p service.CreateSessionParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Please Pay for " + p.ParcelName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
	}
	params.AddMetadata("parcelId", p.ParcelID)
	params.AddMetadata("parcelName", p.ParcelName)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", err
	}

	return sess.URL, nil
}

// GetCheckoutSession resolves a session id to its current external state.
func (g *CheckoutGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*service.CheckoutSession, error) {
	sess, err := g.api.CheckoutSessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, err
	}

	out := &service.CheckoutSession{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}

	return out, nil
}
