package payment

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"slotgate/internal/pkg/config"
	"slotgate/internal/pkg/errs"
	"slotgate/internal/usecase/commands"
)

// StripeGateway adapts Stripe Checkout to the CheckoutProvider port and
// verifies incoming webhook signatures.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, metadata map[string]string, spec commands.PriceSpec) (*commands.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(spec.Currency),
					UnitAmount: stripe.Int64(spec.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(spec.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create checkout session")
	}
	return &commands.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyAndParse authenticates the raw webhook body against the signing
// secret and flattens the event into the provider-neutral form the
// reconciler consumes. Events without a checkout session object yield an
// event with an empty SessionID.
func (g *StripeGateway) VerifyAndParse(body []byte, sigHeader string) (commands.ProviderEvent, error) {
	event, err := webhook.ConstructEventWithOptions(body, sigHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return commands.ProviderEvent{}, errs.Wrap(err, "webhook signature verification failed")
	}

	ev := commands.ProviderEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	switch ev.Type {
	case commands.EventCheckoutCompleted, commands.EventCheckoutExpired:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return commands.ProviderEvent{}, errs.Wrap(err, "failed to decode checkout session object")
		}
		ev.SessionID = sess.ID
		ev.Metadata = sess.Metadata
		if sess.PaymentIntent != nil {
			ev.PaymentID = sess.PaymentIntent.ID
		}
	}
	return ev, nil
}
