package errs

import "errors"

// Sentinel errors shared between the checkout usecases and the HTTP layer.
var (
	// Coupon validation errors: user-correctable, never retried.
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon is inactive")
	ErrCouponNotYetValid  = errors.New("coupon is not yet valid")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrBelowMinimumAmount = errors.New("amount below coupon minimum")
	ErrPlanNotEligible    = errors.New("coupon not applicable to plan")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrUserLimitReached   = errors.New("per-user coupon limit reached")
	ErrInvalidCouponInput = errors.New("invalid coupon definition")
	ErrCouponCodeExists   = errors.New("coupon code already exists")

	// Plan errors
	ErrPlanNotFound    = errors.New("plan not found")
	ErrRoleNotEligible = errors.New("role not eligible for plan")

	// Payment intent errors
	ErrIntentNotFound            = errors.New("payment intent not found")
	ErrInvalidIntent             = errors.New("payment intent already processed")
	ErrGatewayVerificationFailed = errors.New("gateway charge verification failed")
	ErrNotFreeCheckout           = errors.New("coupon does not cover full amount")

	// Store errors
	ErrStoreConflict           = errors.New("transient store conflict")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
