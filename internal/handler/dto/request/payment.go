package request

import "strings"

type CreateIntentRequest struct {
	PlanID     string  `json:"planId" binding:"required"`
	CouponCode *string `json:"couponCode,omitempty"`
}

// GetCouponCode treats a blank code as absent.
func (r CreateIntentRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	PlanID          string `json:"planId" binding:"required"`
}

type ActivateFreeRequest struct {
	PlanID     string `json:"planId" binding:"required"`
	CouponCode string `json:"couponCode" binding:"required"`
}
