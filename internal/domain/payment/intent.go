package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTransition = errors.New("invalid intent status transition")

// IntentStatus is the lifecycle of the local shadow of a gateway payment
// intent. created is the only live state; the rest are terminal:
//
//	created ──> confirmed   (ConfirmationHandler, exactly once)
//	created ──> failed      (gateway verification failed)
//	created ──> superseded  (checkout inputs changed, a newer intent exists)
type IntentStatus string

const (
	StatusCreated    IntentStatus = "created"
	StatusSuperseded IntentStatus = "superseded"
	StatusConfirmed  IntentStatus = "confirmed"
	StatusFailed     IntentStatus = "failed"
)

func (s IntentStatus) Terminal() bool {
	return s != StatusCreated
}

// CanTransitionTo enforces the state machine above; terminal states are
// immutable.
func (s IntentStatus) CanTransitionTo(next IntentStatus) bool {
	if s != StatusCreated {
		return false
	}
	switch next {
	case StatusSuperseded, StatusConfirmed, StatusFailed:
		return true
	default:
		return false
	}
}

// IntentRecord mirrors one gateway payment intent. CouponCode is the
// normalized code the intent's amount was computed with, nil for
// undiscounted checkouts.
type IntentRecord struct {
	IntentID     string
	UserID       uuid.UUID
	PlanID       string
	AmountCents  int64
	Currency     string
	CouponCode   *string
	ClientSecret string
	Status       IntentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewIntentRecord(intentID string, userID uuid.UUID, planID string, amountCents int64, currency string, couponCode *string, clientSecret string) (*IntentRecord, error) {
	if intentID == "" {
		return nil, errors.New("intent ID required")
	}
	if amountCents <= 0 {
		return nil, errors.New("intent amount must be positive")
	}
	return &IntentRecord{
		IntentID:     intentID,
		UserID:       userID,
		PlanID:       planID,
		AmountCents:  amountCents,
		Currency:     currency,
		CouponCode:   couponCode,
		ClientSecret: clientSecret,
		Status:       StatusCreated,
	}, nil
}

// SameInputs reports whether a new checkout request matches the inputs this
// intent was priced with, in which case it can be reused instead of
// superseded.
func (r *IntentRecord) SameInputs(couponCode *string, amountCents int64) bool {
	if r.AmountCents != amountCents {
		return false
	}
	if (r.CouponCode == nil) != (couponCode == nil) {
		return false
	}
	if r.CouponCode != nil && *r.CouponCode != *couponCode {
		return false
	}
	return true
}
