//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "impactmatch-checkout/internal/domain/coupon"
	reqdto "impactmatch-checkout/internal/handler/dto/request"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID              uuid.UUID
	Code            string
	DiscountType    domcoupon.DiscountType
	DiscountValue   float64
	MaxUses         int32
	UsedCount       int32
	MaxUsesPerUser  int32
	ApplicablePlans []string
	MinAmountCents  *int64
	ValidFrom       time.Time
	ValidUntil      time.Time
	IsActive        bool
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	return &CouponBuilder{
		ID:              uuid.New(),
		Code:            "LAUNCH50",
		DiscountType:    domcoupon.DiscountPercentage,
		DiscountValue:   50,
		MaxUses:         100,
		UsedCount:       0,
		MaxUsesPerUser:  1,
		ApplicablePlans: nil,
		MinAmountCents:  nil,
		ValidFrom:       now.Add(-time.Hour),
		ValidUntil:      now.Add(24 * time.Hour),
		IsActive:        true,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	discount, err := domcoupon.NewDiscount(b.DiscountType, b.DiscountValue)
	if err != nil {
		return nil, err
	}
	return domcoupon.NewCoupon(
		b.ID, b.Code, discount,
		b.MaxUses, b.UsedCount, b.MaxUsesPerUser,
		b.ApplicablePlans, b.MinAmountCents,
		b.ValidFrom, b.ValidUntil, b.IsActive,
	)
}

func (b *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	return &shared.CouponSnapshot{
		ID:              b.ID,
		Code:            b.Code,
		DiscountType:    b.DiscountType,
		DiscountValue:   b.DiscountValue,
		MaxUses:         b.MaxUses,
		UsedCount:       b.UsedCount,
		MaxUsesPerUser:  b.MaxUsesPerUser,
		ApplicablePlans: b.ApplicablePlans,
		MinAmountCents:  b.MinAmountCents,
		ValidFrom:       b.ValidFrom,
		ValidUntil:      b.ValidUntil,
		IsActive:        b.IsActive,
	}
}

func (b *CouponBuilder) BuildCreateRequestDTO() reqdto.CreateCouponRequest {
	var minAmount *int64
	if b.MinAmountCents != nil {
		v := *b.MinAmountCents
		minAmount = &v
	}
	return reqdto.CreateCouponRequest{
		Code:            b.Code,
		DiscountType:    string(b.DiscountType),
		DiscountValue:   b.DiscountValue,
		MaxUses:         b.MaxUses,
		MaxUsesPerUser:  b.MaxUsesPerUser,
		ApplicablePlans: b.ApplicablePlans,
		MinAmountCents:  minAmount,
		ValidFrom:       b.ValidFrom,
		ValidUntil:      b.ValidUntil,
		IsActive:        b.IsActive,
	}
}
