package commands

import (
	"context"
	"log/slog"
	"time"

	"impactmatch-checkout/internal/domain/payment"
	"impactmatch-checkout/internal/domain/plan"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/config"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutResult is the outcome of CreateOrReplaceIntent. FreeActivation
// means the coupon covered the full price: no gateway intent exists and the
// caller should go straight to ConfirmationCommands.ActivateFree.
type CheckoutResult struct {
	FreeActivation bool
	IntentID       string
	ClientSecret   string
	AmountCents    int64
	Currency       string
	CouponCode     *string
	Reused         bool
}

type CheckoutCommands interface {
	CreateOrReplaceIntent(ctx context.Context, userID uuid.UUID, role, planID string, couponCode *string) (*CheckoutResult, error)
	// ExpireStaleIntents fails abandoned created intents older than the
	// configured TTL. Driven by the background sweeper, never by checkout.
	ExpireStaleIntents(ctx context.Context) (int64, error)
}

type checkoutCommandsImpl struct {
	uow        shared.UnitOfWork
	catalog    *plan.Catalog
	couponCmds CouponCommands
	gateway    PaymentGateway
	clock      clock.Clock
	intentTTL  time.Duration
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	catalog *plan.Catalog,
	couponCmds CouponCommands,
	gateway PaymentGateway,
	clk clock.Clock,
	cfg config.BillingConfig,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:        uow,
		catalog:    catalog,
		couponCmds: couponCmds,
		gateway:    gateway,
		clock:      clk,
		intentTTL:  cfg.IntentTTL,
	}
}

func (c *checkoutCommandsImpl) CreateOrReplaceIntent(ctx context.Context, userID uuid.UUID, role, planID string, couponCode *string) (*CheckoutResult, error) {
	p, err := c.catalog.Get(planID)
	if err != nil {
		return nil, errs.ErrPlanNotFound
	}
	if !p.EligibleFor(role) {
		return nil, errs.ErrRoleNotEligible
	}

	amount := p.PriceCents
	var normalized *string
	if couponCode != nil {
		quote, err := c.couponCmds.Validate(ctx, *couponCode, planID, userID)
		if err != nil {
			return nil, err
		}
		amount = quote.FinalAmountCents
		normalized = &quote.Code

		if amount == 0 {
			// A full discount needs no gateway intent, but a prior live
			// intent for this checkout still carries a usable client secret
			// at the old amount. Retire it before sending the caller to the
			// free path.
			if err := c.retireLiveIntent(ctx, userID, planID); err != nil {
				return nil, err
			}
			return &CheckoutResult{
				FreeActivation: true,
				AmountCents:    0,
				Currency:       p.Currency,
				CouponCode:     normalized,
			}, nil
		}
	}

	prior, err := c.findLiveIntent(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if prior != nil && sameIntentInputs(prior, normalized, amount) {
		return &CheckoutResult{
			IntentID:     prior.IntentID,
			ClientSecret: prior.ClientSecret,
			AmountCents:  prior.AmountCents,
			Currency:     prior.Currency,
			CouponCode:   prior.CouponCode,
			Reused:       true,
		}, nil
	}

	meta := map[string]string{
		"user_id": userID.String(),
		"plan_id": planID,
	}
	if normalized != nil {
		meta["coupon_code"] = *normalized
	}
	gwIntent, err := c.gateway.CreateIntent(ctx, amount, p.Currency, meta)
	if err != nil {
		return nil, errs.Wrap(err, "gateway intent creation failed")
	}

	rec, err := payment.NewIntentRecord(gwIntent.ID, userID, planID, amount, p.Currency, normalized, gwIntent.ClientSecret)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if prior != nil {
			// A prior intent is never mutated into the new one: it is
			// superseded and a fresh record is written, so a stale client
			// secret can never complete at an outdated amount.
			if _, err := tx.Intents().MarkSuperseded(ctx, prior.IntentID); err != nil {
				return err
			}
		}
		return tx.Intents().Create(ctx, rec)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if prior != nil {
		if cancelErr := c.gateway.CancelIntent(ctx, prior.IntentID); cancelErr != nil {
			slog.Warn("failed to cancel superseded gateway intent",
				"intent_id", prior.IntentID, "error", cancelErr.Error())
		}
	}

	return &CheckoutResult{
		IntentID:     rec.IntentID,
		ClientSecret: rec.ClientSecret,
		AmountCents:  rec.AmountCents,
		Currency:     rec.Currency,
		CouponCode:   rec.CouponCode,
	}, nil
}

func (c *checkoutCommandsImpl) ExpireStaleIntents(ctx context.Context) (int64, error) {
	cutoff := c.clock.Now().Add(-c.intentTTL)

	var expired int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var txErr error
		expired, txErr = tx.Intents().ExpireStaleCreated(ctx, cutoff)
		return txErr
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if expired > 0 {
		slog.Info("expired stale payment intents", "count", expired, "cutoff", cutoff)
	}
	return expired, nil
}

// retireLiveIntent supersedes and best-effort cancels the live created intent
// for this checkout, if one exists.
func (c *checkoutCommandsImpl) retireLiveIntent(ctx context.Context, userID uuid.UUID, planID string) error {
	prior, err := c.findLiveIntent(ctx, userID, planID)
	if err != nil {
		return err
	}
	if prior == nil {
		return nil
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, txErr := tx.Intents().MarkSuperseded(ctx, prior.IntentID)
		return txErr
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if cancelErr := c.gateway.CancelIntent(ctx, prior.IntentID); cancelErr != nil {
		slog.Warn("failed to cancel superseded gateway intent",
			"intent_id", prior.IntentID, "error", cancelErr.Error())
	}
	return nil
}

func (c *checkoutCommandsImpl) findLiveIntent(ctx context.Context, userID uuid.UUID, planID string) (*shared.IntentSnapshot, error) {
	prior, err := c.uow.CommandReads().LiveIntentForCheckout(ctx, userID, planID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return prior, nil
}

func sameIntentInputs(prior *shared.IntentSnapshot, couponCode *string, amountCents int64) bool {
	if prior.AmountCents != amountCents {
		return false
	}
	if (prior.CouponCode == nil) != (couponCode == nil) {
		return false
	}
	if prior.CouponCode != nil && *prior.CouponCode != *couponCode {
		return false
	}
	return true
}
