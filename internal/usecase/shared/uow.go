package shared

import (
	"context"
	"time"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/domain/payment"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction with bounded retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside any transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Coupons() CouponRepository
	Intents() IntentRepository
	Subscriptions() SubscriptionRepository
	Reads() CommandReads
}

type CommandReads interface {
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	RedemptionCount(ctx context.Context, code string, userID uuid.UUID) (int, error)
	IntentByID(ctx context.Context, intentID string) (*IntentSnapshot, error)
	// LiveIntentForCheckout returns the newest created intent of a
	// (user, plan) checkout session, or a not-found kind error.
	LiveIntentForCheckout(ctx context.Context, userID uuid.UUID, planID string) (*IntentSnapshot, error)
	SubscriptionByUser(ctx context.Context, userID uuid.UUID) (*SubscriptionSnapshot, error)
}

// Write-side snapshots prevent dependency on read-side query types.
type CouponSnapshot struct {
	ID              uuid.UUID
	Code            string
	DiscountType    coupon.DiscountType
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

type IntentSnapshot struct {
	IntentID     string
	UserID       uuid.UUID
	PlanID       string
	AmountCents  int64
	Currency     string
	CouponCode   *string
	ClientSecret string
	Status       payment.IntentStatus
	CreatedAt    time.Time
}

type SubscriptionSnapshot struct {
	UserID     uuid.UUID
	PlanID     string
	Status     string
	ExpiryDate time.Time
	UpdatedAt  time.Time
}

// Redemption is one ledger entry tying a finalized coupon use to a
// confirmed payment. PaymentIntentID is nil for free activations.
type Redemption struct {
	CouponCode        string
	UserID            uuid.UUID
	PlanID            string
	PaymentIntentID   *string
	AmountBeforeCents int64
	AmountAfterCents  int64
	CreatedAt         time.Time
}

type CouponRepository interface {
	Insert(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error)
	// ConsumeSlot performs the atomic conditional increment
	// (used_count+1 where capacity remains). A failed guard surfaces as a
	// conflict-kind repository error, never as a silent no-op.
	ConsumeSlot(ctx context.Context, code string) error
	InsertRedemption(ctx context.Context, r Redemption) error
	CountRedemptions(ctx context.Context, code string, userID uuid.UUID) (int, error)
}

type IntentRepository interface {
	Create(ctx context.Context, rec *payment.IntentRecord) error
	// MarkSuperseded transitions created -> superseded. Returns false when
	// the record was already terminal (lost race); never overwrites.
	MarkSuperseded(ctx context.Context, intentID string) (bool, error)
	// MarkConfirmed transitions created -> confirmed. False means the
	// idempotency guard fired: someone else confirmed or superseded first.
	MarkConfirmed(ctx context.Context, intentID string) (bool, error)
	MarkFailed(ctx context.Context, intentID string) (bool, error)
	// ExpireStaleCreated fails created intents older than cutoff. Coupon
	// counters are untouched: validation never reserves inventory.
	ExpireStaleCreated(ctx context.Context, cutoff time.Time) (int64, error)
}

type SubscriptionRepository interface {
	// Activate is an idempotent upsert keyed by user.
	Activate(ctx context.Context, userID uuid.UUID, planID string, expiry time.Time) error
}
