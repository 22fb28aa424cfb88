package commands

import (
	"context"
)

// GatewayIntent is the slice of the provider's intent object this core
// needs: the ID to confirm against and the secret the client pays with.
type GatewayIntent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*GatewayIntent, error)
	// VerifyCharge checks server-side that the charge actually succeeded;
	// a client-supplied "succeeded" flag is never trusted on its own.
	VerifyCharge(ctx context.Context, intentID string) (bool, error)
	// CancelIntent is best-effort cleanup of superseded intents.
	CancelIntent(ctx context.Context, intentID string) error
}
