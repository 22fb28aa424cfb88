package commands

import (
	"context"
	"errors"
	"time"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/domain/plan"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// ValidationResult is the quote a validated coupon produces for one
// (plan, user) checkout. Validation is side-effect free: no inventory is
// reserved until Finalize, so an abandoned cart never starves a coupon.
type ValidationResult struct {
	Code                string
	DiscountType        coupon.DiscountType
	DiscountValue       float64
	BaseAmountCents     int64
	DiscountAmountCents int64
	FinalAmountCents    int64
}

type FinalizeParams struct {
	Code              string
	UserID            uuid.UUID
	PlanID            string
	PaymentIntentID   *string
	AmountBeforeCents int64
	AmountAfterCents  int64
}

type CreateCouponParams struct {
	Code            string
	DiscountType    coupon.DiscountType
	DiscountValue   float64
	MaxUses         int32
	MaxUsesPerUser  int32
	ApplicablePlans []string
	MinAmountCents  *int64
	ValidFrom       time.Time
	ValidUntil      time.Time
	IsActive        bool
}

type CouponCommands interface {
	Validate(ctx context.Context, code, planID string, userID uuid.UUID) (*ValidationResult, error)
	// Finalize consumes one unit of coupon inventory inside the caller's
	// transaction. Only ConfirmationCommands calls it.
	Finalize(ctx context.Context, tx shared.Tx, p FinalizeParams) error
	Create(ctx context.Context, p CreateCouponParams) (uuid.UUID, error)
}

type couponCommandsImpl struct {
	uow     shared.UnitOfWork
	catalog *plan.Catalog
	clock   clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, catalog *plan.Catalog, clk clock.Clock) CouponCommands {
	return &couponCommandsImpl{
		uow:     uow,
		catalog: catalog,
		clock:   clk,
	}
}

func (c *couponCommandsImpl) Validate(ctx context.Context, code, planID string, userID uuid.UUID) (*ValidationResult, error) {
	p, err := c.catalog.Get(planID)
	if err != nil {
		return nil, errs.ErrPlanNotFound
	}

	reads := c.uow.CommandReads()
	ent, err := loadCoupon(ctx, reads, code)
	if err != nil {
		return nil, err
	}

	if err := ent.CheckEligibility(c.clock.Now(), planID, p.PriceCents); err != nil {
		return nil, mapCouponErr(err)
	}

	prior, err := reads.RedemptionCount(ctx, ent.Code().String(), userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := ent.CheckUserLimit(prior); err != nil {
		return nil, mapCouponErr(err)
	}

	discount := ent.Discount().AmountOffCents(p.PriceCents)
	return &ValidationResult{
		Code:                ent.Code().String(),
		DiscountType:        ent.Discount().Type(),
		DiscountValue:       ent.Discount().Value(),
		BaseAmountCents:     p.PriceCents,
		DiscountAmountCents: discount,
		FinalAmountCents:    ent.Discount().Apply(p.PriceCents),
	}, nil
}

// Finalize re-checks both limits at this instant: time has passed since
// Validate and concurrent confirmations may have consumed inventory.
// The conditional increment runs first because its UPDATE takes the coupon
/// row lock: a concurrent finalize of the same code serializes there, so the
// per-user count that follows sees every prior committed redemption. Counting
// before the lock would let two transactions by the same user both read zero
// under ReadCommitted. The increment and the ledger insert share the caller's
// transaction, so a rollback releases the slot.
func (c *couponCommandsImpl) Finalize(ctx context.Context, tx shared.Tx, p FinalizeParams) error {
	ent, err := loadCoupon(ctx, tx.Reads(), p.Code)
	if err != nil {
		return err
	}

	if err := tx.Coupons().ConsumeSlot(ctx, ent.Code().String()); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Expected race outcome when the last slot was taken between
			// Validate and now; the caller decides whether it is fatal.
			return errs.Mark(err, errs.ErrCouponExhausted)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	prior, err := tx.Coupons().CountRedemptions(ctx, ent.Code().String(), p.UserID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := ent.CheckUserLimit(prior); err != nil {
		return mapCouponErr(err)
	}

	red := shared.Redemption{
		CouponCode:        ent.Code().String(),
		UserID:            p.UserID,
		PlanID:            p.PlanID,
		PaymentIntentID:   p.PaymentIntentID,
		AmountBeforeCents: p.AmountBeforeCents,
		AmountAfterCents:  p.AmountAfterCents,
	}
	if err := tx.Coupons().InsertRedemption(ctx, red); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return errs.Mark(err, errs.ErrStoreConflict)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil
}

func (c *couponCommandsImpl) Create(ctx context.Context, p CreateCouponParams) (uuid.UUID, error) {
	discount, err := coupon.NewDiscount(p.DiscountType, p.DiscountValue)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidCouponInput)
	}

	ent, err := coupon.NewCoupon(
		uuid.New(), p.Code, discount,
		p.MaxUses, 0, p.MaxUsesPerUser,
		p.ApplicablePlans, p.MinAmountCents,
		p.ValidFrom, p.ValidUntil, p.IsActive,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidCouponInput)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var insertErr error
		id, insertErr = tx.Coupons().Insert(ctx, ent)
		return insertErr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, errs.ErrCouponCodeExists)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return id, nil
}

func loadCoupon(ctx context.Context, reads shared.CommandReads, code string) (*coupon.Coupon, error) {
	snap, err := reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCouponNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snapshotToDomain(snap)
}

func snapshotToDomain(snap *shared.CouponSnapshot) (*coupon.Coupon, error) {
	discount, err := coupon.NewDiscount(snap.DiscountType, snap.DiscountValue)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	ent, err := coupon.NewCoupon(
		snap.ID, snap.Code, discount,
		snap.MaxUses, snap.UsedCount, snap.MaxUsesPerUser,
		snap.ApplicablePlans, snap.MinAmountCents,
		snap.ValidFrom, snap.ValidUntil, snap.IsActive,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return ent, nil
}

func mapCouponErr(err error) error {
	switch {
	case errors.Is(err, coupon.ErrCouponInactive):
		return errs.ErrCouponInactive
	case errors.Is(err, coupon.ErrCouponNotYetValid):
		return errs.ErrCouponNotYetValid
	case errors.Is(err, coupon.ErrCouponExpired):
		return errs.ErrCouponExpired
	case errors.Is(err, coupon.ErrBelowMinimum):
		return errs.ErrBelowMinimumAmount
	case errors.Is(err, coupon.ErrPlanNotEligible):
		return errs.ErrPlanNotEligible
	case errors.Is(err, coupon.ErrExhausted):
		return errs.ErrCouponExhausted
	case errors.Is(err, coupon.ErrUserLimitReached):
		return errs.ErrUserLimitReached
	default:
		return err
	}
}
