package response

import (
	"impactmatch-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type ValidateCouponResponse struct {
	Valid          bool    `json:"valid"`
	Code           string  `json:"code"`
	DiscountType   string  `json:"discountType"`
	DiscountValue  float64 `json:"discountValue"`
	OriginalAmount int64   `json:"originalAmount"`
	DiscountAmount int64   `json:"discountAmount"`
	FinalAmount    int64   `json:"finalAmount"`
}

func FromValidationResult(r *commands.ValidationResult) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		Valid:          true,
		Code:           r.Code,
		DiscountType:   string(r.DiscountType),
		DiscountValue:  r.DiscountValue,
		OriginalAmount: r.BaseAmountCents,
		DiscountAmount: r.DiscountAmountCents,
		FinalAmount:    r.FinalAmountCents,
	}
}

type CreateCouponResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}
