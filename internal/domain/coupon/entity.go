package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrBelowMinimum      = errors.New("amount below coupon minimum")
	ErrPlanNotEligible   = errors.New("coupon not applicable to this plan")
	ErrExhausted         = errors.New("coupon usage limit reached")
	ErrUserLimitReached  = errors.New("per-user usage limit reached")
	ErrInvalidUsageLimit = errors.New("usage limits cannot be negative")
)

// Coupon is a discount code with usage and validity constraints.
// Zero maxUses / maxUsesPerUser means unlimited. An empty applicablePlans
// set means the coupon applies to every plan.
type Coupon struct {
	id              uuid.UUID
	code            Code
	discount        Discount
	maxUses         int32
	usedCount       int32
	maxUsesPerUser  int32
	applicablePlans []string
	minAmountCents  *int64
	validFrom       time.Time
	validUntil      time.Time
	isActive        bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discount Discount,
	maxUses, usedCount, maxUsesPerUser int32,
	applicablePlans []string,
	minAmountCents *int64,
	validFrom, validUntil time.Time,
	isActive bool,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if maxUses < 0 || usedCount < 0 || maxUsesPerUser < 0 {
		return nil, ErrInvalidUsageLimit
	}
	if !validUntil.IsZero() && validUntil.Before(validFrom) {
		return nil, errors.New("validity window ends before it starts")
	}

	return &Coupon{
		id:              id,
		code:            couponCode,
		discount:        discount,
		maxUses:         maxUses,
		usedCount:       usedCount,
		maxUsesPerUser:  maxUsesPerUser,
		applicablePlans: applicablePlans,
		minAmountCents:  minAmountCents,
		validFrom:       validFrom,
		validUntil:      validUntil,
		isActive:        isActive,
	}, nil
}

// IsWithinWindow reports whether t falls inside the inclusive
// [validFrom, validUntil] window.
func (c *Coupon) IsWithinWindow(t time.Time) bool {
	if t.Before(c.validFrom) {
		return false
	}
	if t.After(c.validUntil) {
		return false
	}
	return true
}

// HasCapacity reports whether a global redemption slot remains.
func (c *Coupon) HasCapacity() bool {
	return c.maxUses == 0 || c.usedCount < c.maxUses
}

// AppliesToPlan reports plan eligibility; an empty set means all plans.
func (c *Coupon) AppliesToPlan(planID string) bool {
	if len(c.applicablePlans) == 0 {
		return true
	}
	for _, p := range c.applicablePlans {
		if p == planID {
			return true
		}
	}
	return false
}

// CheckEligibility runs every validation-time constraint against a candidate
// (plan, amount) at instant t. It performs no reservation: a slot is only
// consumed at finalization time.
func (c *Coupon) CheckEligibility(t time.Time, planID string, baseAmountCents int64) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if t.Before(c.validFrom) {
		return ErrCouponNotYetValid
	}
	if t.After(c.validUntil) {
		return ErrCouponExpired
	}
	if c.minAmountCents != nil && baseAmountCents < *c.minAmountCents {
		return ErrBelowMinimum
	}
	if !c.AppliesToPlan(planID) {
		return ErrPlanNotEligible
	}
	if !c.HasCapacity() {
		return ErrExhausted
	}
	return nil
}

// CheckUserLimit validates the per-user cap given the number of redemptions
// this user has already finalized.
func (c *Coupon) CheckUserLimit(priorRedemptions int) error {
	if c.maxUsesPerUser > 0 && priorRedemptions >= int(c.maxUsesPerUser) {
		return ErrUserLimitReached
	}
	return nil
}

func (c *Coupon) ID() uuid.UUID             { return c.id }
func (c *Coupon) Code() Code                { return c.code }
func (c *Coupon) Discount() Discount        { return c.discount }
func (c *Coupon) MaxUses() int32            { return c.maxUses }
func (c *Coupon) UsedCount() int32          { return c.usedCount }
func (c *Coupon) MaxUsesPerUser() int32     { return c.maxUsesPerUser }
func (c *Coupon) ApplicablePlans() []string { return c.applicablePlans }
func (c *Coupon) MinAmountCents() *int64    { return c.minAmountCents }
func (c *Coupon) ValidFrom() time.Time      { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time     { return c.validUntil }
func (c *Coupon) IsActive() bool            { return c.isActive }
func (c *Coupon) CreatedAt() time.Time      { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time      { return c.updatedAt }
