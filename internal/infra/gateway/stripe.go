package gateway

import (
	"context"

	"impactmatch-checkout/internal/pkg/config"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/commands"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// StripeGateway adapts the Stripe PaymentIntent API to the checkout core's
// gateway port.
type StripeGateway struct{}

func NewStripeGateway(cfg config.StripeConfig) commands.PaymentGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*commands.GatewayIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create gateway intent")
	}

	return &commands.GatewayIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) VerifyCharge(ctx context.Context, intentID string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return false, errs.Wrap(err, "failed to retrieve gateway intent")
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

func (g *StripeGateway) CancelIntent(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	if _, err := paymentintent.Cancel(intentID, params); err != nil {
		return errs.Wrap(err, "failed to cancel gateway intent")
	}
	return nil
}
