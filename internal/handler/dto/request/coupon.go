package request

import (
	"time"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/usecase/commands"
)

type ValidateCouponRequest struct {
	Code   string `json:"code" binding:"required"`
	PlanID string `json:"planId" binding:"required"`
}

type CreateCouponRequest struct {
	Code            string    `json:"code" binding:"required"`
	DiscountType    string    `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue   float64   `json:"discountValue" binding:"required,gt=0"`
	MaxUses         int32     `json:"maxUses" binding:"gte=0"`
	MaxUsesPerUser  int32     `json:"maxUsesPerUser" binding:"gte=0"`
	ApplicablePlans []string  `json:"applicablePlans"`
	MinAmountCents  *int64    `json:"minAmountCents" binding:"omitempty,gte=0"`
	ValidFrom       time.Time `json:"validFrom" binding:"required"`
	ValidUntil      time.Time `json:"validUntil" binding:"required"`
	IsActive        bool      `json:"isActive"`
}

func (r CreateCouponRequest) ToParams() commands.CreateCouponParams {
	return commands.CreateCouponParams{
		Code:            r.Code,
		DiscountType:    coupon.DiscountType(r.DiscountType),
		DiscountValue:   r.DiscountValue,
		MaxUses:         r.MaxUses,
		MaxUsesPerUser:  r.MaxUsesPerUser,
		ApplicablePlans: r.ApplicablePlans,
		MinAmountCents:  r.MinAmountCents,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		IsActive:        r.IsActive,
	}
}
