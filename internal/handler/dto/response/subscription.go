package response

import (
	"time"

	"impactmatch-checkout/internal/usecase/queries"
)

type SubscriptionResponse struct {
	PlanID     string     `json:"planId,omitempty"`
	Status     string     `json:"status"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

func FromSubscriptionView(v *queries.SubscriptionView) *SubscriptionResponse {
	return &SubscriptionResponse{
		PlanID:     v.PlanID,
		Status:     v.Status,
		ExpiryDate: v.ExpiryDate,
	}
}
