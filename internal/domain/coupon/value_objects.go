package coupon

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("fixed discount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be in (0, 100]")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is a normalized (trimmed, uppercased) coupon code.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

// Normalize uppercases and trims a raw code without validating its shape.
// Lookups use this so that unknown codes fall through to not-found.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	kind  DiscountType
	value float64
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff <= 0 || percentOff > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{kind: DiscountPercentage, value: percentOff}, nil
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents <= 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountFixed, value: float64(amountOffCents)}, nil
}

func NewDiscount(kind DiscountType, value float64) (Discount, error) {
	switch kind {
	case DiscountPercentage:
		return NewPercentageDiscount(value)
	case DiscountFixed:
		return NewFixedDiscount(int64(value))
	default:
		return Discount{}, errors.New("unknown discount type")
	}
}

func (d Discount) Type() DiscountType {
	return d.kind
}

func (d Discount) Value() float64 {
	return d.value
}

// AmountOffCents computes the discount for a base price. Percentage
// discounts round half-up; fixed discounts never exceed the base.
func (d Discount) AmountOffCents(basePriceCents int64) int64 {
	switch d.kind {
	case DiscountPercentage:
		return int64(math.Round(float64(basePriceCents) * d.value / 100))
	case DiscountFixed:
		if int64(d.value) > basePriceCents {
			return basePriceCents
		}
		return int64(d.value)
	default:
		return 0
	}
}

// Apply returns the discounted price, floored at zero.
func (d Discount) Apply(basePriceCents int64) int64 {
	result := basePriceCents - d.AmountOffCents(basePriceCents)
	if result < 0 {
		return 0
	}
	return result
}
