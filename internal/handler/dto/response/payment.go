package response

import (
	"time"

	"impactmatch-checkout/internal/usecase/commands"
)

type CreateIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PublishableKey  string `json:"publishableKey"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// FreeCheckoutResponse is returned when a coupon discounts the plan to zero
// and the gateway is skipped entirely.
type FreeCheckoutResponse struct {
	Free        bool   `json:"free"`
	RedirectURL string `json:"redirectUrl"`
}

type ConfirmPaymentResponse struct {
	Success          bool      `json:"success"`
	DashboardPath    string    `json:"dashboardPath"`
	PlanID           string    `json:"planId"`
	ExpiryDate       time.Time `json:"expiryDate"`
	AlreadyProcessed bool      `json:"alreadyProcessed,omitempty"`
}

func FromCheckoutResult(r *commands.CheckoutResult, publishableKey string) *CreateIntentResponse {
	return &CreateIntentResponse{
		ClientSecret:    r.ClientSecret,
		PublishableKey:  publishableKey,
		PaymentIntentID: r.IntentID,
		Amount:          r.AmountCents,
		Currency:        r.Currency,
	}
}

func FromConfirmResult(r *commands.ConfirmResult) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		Success:          true,
		DashboardPath:    r.DashboardPath,
		PlanID:           r.PlanID,
		ExpiryDate:       r.ExpiryDate,
		AlreadyProcessed: r.AlreadyProcessed,
	}
}
