package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"impactmatch-checkout/internal/domain/payment"
	"impactmatch-checkout/internal/domain/plan"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

const dashboardPath = "/dashboard?subscription=active"

// errConfirmGuardLost signals inside the confirmation transaction that the
// created-only guard matched zero rows: another delivery won the race.
var errConfirmGuardLost = errs.New("confirmation guard lost")

type ConfirmResult struct {
	DashboardPath string
	PlanID        string
	ExpiryDate    time.Time
	// AlreadyProcessed marks an at-least-once redelivery that was answered
	// from the existing confirmed record without side effects.
	AlreadyProcessed bool
}

type ConfirmationCommands interface {
	Confirm(ctx context.Context, intentID, planID string, userID uuid.UUID) (*ConfirmResult, error)
	// ActivateFree activates a subscription for a coupon that zeroes out the
	// plan price; the gateway is never involved and no intent record exists.
	ActivateFree(ctx context.Context, planID, couponCode string, userID uuid.UUID, role string) (*ConfirmResult, error)
}

type confirmationCommandsImpl struct {
	uow        shared.UnitOfWork
	catalog    *plan.Catalog
	couponCmds CouponCommands
	gateway    PaymentGateway
	clock      clock.Clock
}

func NewConfirmationCommands(
	uow shared.UnitOfWork,
	catalog *plan.Catalog,
	couponCmds CouponCommands,
	gateway PaymentGateway,
	clk clock.Clock,
) ConfirmationCommands {
	return &confirmationCommandsImpl{
		uow:        uow,
		catalog:    catalog,
		couponCmds: couponCmds,
		gateway:    gateway,
		clock:      clk,
	}
}

// Confirm drives the created -> confirmed transition exactly once. The
// created-only guard makes redelivery (client retry, webhook racing a
// client call) a safe no-op that answers from the existing record.
func (c *confirmationCommandsImpl) Confirm(ctx context.Context, intentID, planID string, userID uuid.UUID) (*ConfirmResult, error) {
	snap, err := c.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if snap.UserID != userID || snap.PlanID != planID {
		return nil, errs.ErrInvalidIntent
	}

	switch snap.Status {
	case payment.StatusConfirmed:
		return c.replayResult(ctx, snap)
	case payment.StatusSuperseded, payment.StatusFailed:
		return nil, errs.ErrInvalidIntent
	case payment.StatusCreated:
		// proceed
	default:
		return nil, errs.ErrInvalidIntent
	}

	succeeded, err := c.gateway.VerifyCharge(ctx, snap.IntentID)
	if err != nil {
		return nil, errs.Wrap(err, "gateway verification call failed")
	}
	if !succeeded {
		c.markFailed(ctx, snap.IntentID)
		return nil, errs.ErrGatewayVerificationFailed
	}

	expiry := c.expiryFor(snap.PlanID)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if snap.CouponCode != nil {
			finErr := c.couponCmds.Finalize(ctx, tx, FinalizeParams{
				Code:              *snap.CouponCode,
				UserID:            userID,
				PlanID:            snap.PlanID,
				PaymentIntentID:   &snap.IntentID,
				AmountBeforeCents: c.baseAmountFor(snap),
				AmountAfterCents:  snap.AmountCents,
			})
			switch {
			case finErr == nil:
			case errors.Is(finErr, errs.ErrCouponExhausted), errors.Is(finErr, errs.ErrUserLimitReached):
				// The charge already succeeded at the agreed amount, so the
				// user keeps their subscription; only the ledger entry is
				// missing. Operational anomaly, not a payment failure.
				slog.Warn("coupon could not be finalized after successful charge",
					"intent_id", snap.IntentID,
					"coupon_code", *snap.CouponCode,
					"user_id", userID.String(),
					"reason", finErr.Error())
			default:
				return finErr
			}
		}

		if err := tx.Subscriptions().Activate(ctx, userID, snap.PlanID, expiry); err != nil {
			return err
		}

		// The guarded transition is written last: a crash before this point
		// leaves the intent created and the whole call safely retryable.
		ok, err := tx.Intents().MarkConfirmed(ctx, snap.IntentID)
		if err != nil {
			return err
		}
		if !ok {
			return errConfirmGuardLost
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errConfirmGuardLost) {
			return c.resolveGuardLoss(ctx, snap.IntentID)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ConfirmResult{
		DashboardPath: dashboardPath,
		PlanID:        snap.PlanID,
		ExpiryDate:    expiry,
	}, nil
}

func (c *confirmationCommandsImpl) ActivateFree(ctx context.Context, planID, couponCode string, userID uuid.UUID, role string) (*ConfirmResult, error) {
	p, err := c.catalog.Get(planID)
	if err != nil {
		return nil, errs.ErrPlanNotFound
	}
	if !p.EligibleFor(role) {
		return nil, errs.ErrRoleNotEligible
	}

	quote, err := c.couponCmds.Validate(ctx, couponCode, planID, userID)
	if err != nil {
		return nil, err
	}
	if quote.FinalAmountCents != 0 {
		return nil, errs.ErrNotFreeCheckout
	}

	expiry := c.expiryFor(planID)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Nothing was charged, so unlike Confirm an exhausted coupon is a
		// hard failure here.
		if err := c.couponCmds.Finalize(ctx, tx, FinalizeParams{
			Code:              quote.Code,
			UserID:            userID,
			PlanID:            planID,
			PaymentIntentID:   nil,
			AmountBeforeCents: quote.BaseAmountCents,
			AmountAfterCents:  0,
		}); err != nil {
			return err
		}
		return tx.Subscriptions().Activate(ctx, userID, planID, expiry)
	})
	if err != nil {
		if isCouponOutcome(err) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &ConfirmResult{
		DashboardPath: dashboardPath,
		PlanID:        planID,
		ExpiryDate:    expiry,
	}, nil
}

func (c *confirmationCommandsImpl) loadIntent(ctx context.Context, intentID string) (*shared.IntentSnapshot, error) {
	snap, err := c.uow.CommandReads().IntentByID(ctx, intentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrIntentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// resolveGuardLoss re-reads after a lost created-only guard. A concurrent
// confirm of the same intent already activated the subscription, so the
// redelivery is answered as a replay; anything else is a protocol violation.
func (c *confirmationCommandsImpl) resolveGuardLoss(ctx context.Context, intentID string) (*ConfirmResult, error) {
	snap, err := c.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if snap.Status == payment.StatusConfirmed {
		return c.replayResult(ctx, snap)
	}
	return nil, errs.ErrInvalidIntent
}

// replayResult answers a redelivery from the stored subscription. The expiry
// was fixed when the first delivery activated it; recomputing from the clock
// would drift by however long the retry was delayed.
func (c *confirmationCommandsImpl) replayResult(ctx context.Context, snap *shared.IntentSnapshot) (*ConfirmResult, error) {
	sub, err := c.uow.CommandReads().SubscriptionByUser(ctx, snap.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &ConfirmResult{
		DashboardPath:    dashboardPath,
		PlanID:           snap.PlanID,
		ExpiryDate:       sub.ExpiryDate,
		AlreadyProcessed: true,
	}, nil
}

func (c *confirmationCommandsImpl) markFailed(ctx context.Context, intentID string) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, txErr := tx.Intents().MarkFailed(ctx, intentID)
		return txErr
	})
	if err != nil {
		slog.Error("failed to mark payment intent failed",
			"intent_id", intentID, "error", err.Error())
	}
}

func (c *confirmationCommandsImpl) expiryFor(planID string) time.Time {
	periodDays := 30
	if p, err := c.catalog.Get(planID); err == nil {
		periodDays = p.PeriodDays
	}
	return c.clock.Now().AddDate(0, 0, periodDays)
}

// baseAmountFor recovers the pre-discount amount for the ledger entry; the
// intent itself stores only the discounted amount it was charged at.
func (c *confirmationCommandsImpl) baseAmountFor(snap *shared.IntentSnapshot) int64 {
	if p, err := c.catalog.Get(snap.PlanID); err == nil {
		return p.PriceCents
	}
	return snap.AmountCents
}

func isCouponOutcome(err error) bool {
	for _, sentinel := range []error{
		errs.ErrCouponNotFound, errs.ErrCouponInactive, errs.ErrCouponNotYetValid,
		errs.ErrCouponExpired, errs.ErrBelowMinimumAmount, errs.ErrPlanNotEligible,
		errs.ErrCouponExhausted, errs.ErrUserLimitReached,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
