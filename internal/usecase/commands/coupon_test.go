//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	domcoupon "impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/commands"
	"impactmatch-checkout/internal/usecase/shared"
	"impactmatch-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("quotes a percentage discount", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon()

		result, err := env.coupons.Validate(ctx, code, "ngo-pro", userID)
		require.NoError(t, err)

		assert.Equal(t, "LAUNCH50", result.Code)
		assert.Equal(t, domcoupon.DiscountPercentage, result.DiscountType)
		assert.Equal(t, int64(2999), result.BaseAmountCents)
		assert.Equal(t, int64(1500), result.DiscountAmountCents)
		assert.Equal(t, int64(1499), result.FinalAmountCents)
	})

	t.Run("quotes a fixed discount clamped to base", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon(func(b *builder.CouponBuilder) {
			b.Code = "OFF5000"
			b.DiscountType = domcoupon.DiscountFixed
			b.DiscountValue = 5000
		})

		result, err := env.coupons.Validate(ctx, code, "agent-pro", userID)
		require.NoError(t, err)
		assert.Equal(t, int64(1499), result.DiscountAmountCents)
		assert.Equal(t, int64(0), result.FinalAmountCents)
	})

	t.Run("code lookup is case insensitive", func(t *testing.T) {
		env := newTestEnv()
		env.seedCoupon()

		result, err := env.coupons.Validate(ctx, "  launch50 ", "ngo-pro", userID)
		require.NoError(t, err)
		assert.Equal(t, "LAUNCH50", result.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.coupons.Validate(ctx, "NOSUCH", "ngo-pro", userID)
		assert.ErrorIs(t, err, errs.ErrCouponNotFound)
	})

	t.Run("unknown plan", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon()
		_, err := env.coupons.Validate(ctx, code, "enterprise", userID)
		assert.ErrorIs(t, err, errs.ErrPlanNotFound)
	})

	t.Run("eligibility failures surface as sentinels", func(t *testing.T) {
		for _, tc := range []struct {
			name   string
			mutate func(*builder.CouponBuilder)
			errIs  error
		}{
			{
				name:   "inactive",
				mutate: func(b *builder.CouponBuilder) { b.IsActive = false },
				errIs:  errs.ErrCouponInactive,
			},
			{
				name: "not yet valid",
				mutate: func(b *builder.CouponBuilder) {
					b.ValidFrom = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
				},
				errIs: errs.ErrCouponNotYetValid,
			},
			{
				name: "expired",
				mutate: func(b *builder.CouponBuilder) {
					b.ValidUntil = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
				},
				errIs: errs.ErrCouponExpired,
			},
			{
				name: "below minimum",
				mutate: func(b *builder.CouponBuilder) {
					min := int64(5000)
					b.MinAmountCents = &min
				},
				errIs: errs.ErrBelowMinimumAmount,
			},
			{
				name:   "plan not eligible",
				mutate: func(b *builder.CouponBuilder) { b.ApplicablePlans = []string{"agent-pro"} },
				errIs:  errs.ErrPlanNotEligible,
			},
			{
				name: "exhausted",
				mutate: func(b *builder.CouponBuilder) {
					b.MaxUses = 5
					b.UsedCount = 5
				},
				errIs: errs.ErrCouponExhausted,
			},
		} {
			t.Run(tc.name, func(t *testing.T) {
				env := newTestEnv()
				code := env.seedCoupon(tc.mutate)
				_, err := env.coupons.Validate(ctx, code, "ngo-pro", userID)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("per-user limit counts finalized redemptions", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon(func(b *builder.CouponBuilder) { b.MaxUsesPerUser = 1 })
		env.store.putRedemption(shared.Redemption{CouponCode: code, UserID: userID, PlanID: "ngo-pro"})

		_, err := env.coupons.Validate(ctx, code, "ngo-pro", userID)
		assert.ErrorIs(t, err, errs.ErrUserLimitReached)

		_, err = env.coupons.Validate(ctx, code, "ngo-pro", uuid.New())
		assert.NoError(t, err, "other users are unaffected")
	})
}

func TestCreateCoupon(t *testing.T) {
	ctx := context.Background()

	params := commands.CreateCouponParams{
		Code:           "WELCOME10",
		DiscountType:   domcoupon.DiscountPercentage,
		DiscountValue:  10,
		MaxUses:        50,
		MaxUsesPerUser: 1,
		ValidFrom:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:     time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}

	t.Run("creates and is immediately validatable", func(t *testing.T) {
		env := newTestEnv()
		id, err := env.coupons.Create(ctx, params)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		result, err := env.coupons.Validate(ctx, "WELCOME10", "ngo-pro", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(300), result.DiscountAmountCents)
		assert.Equal(t, int64(2699), result.FinalAmountCents)
	})

	t.Run("duplicate code", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.coupons.Create(ctx, params)
		require.NoError(t, err)
		_, err = env.coupons.Create(ctx, params)
		assert.ErrorIs(t, err, errs.ErrCouponCodeExists)
	})

	t.Run("invalid definitions rejected", func(t *testing.T) {
		env := newTestEnv()
		for _, tc := range []struct {
			name   string
			mutate func(*commands.CreateCouponParams)
		}{
			{name: "bad code", mutate: func(p *commands.CreateCouponParams) { p.Code = "x" }},
			{name: "zero percent", mutate: func(p *commands.CreateCouponParams) { p.DiscountValue = 0 }},
			{name: "over 100 percent", mutate: func(p *commands.CreateCouponParams) { p.DiscountValue = 150 }},
			{name: "unknown type", mutate: func(p *commands.CreateCouponParams) { p.DiscountType = "raffle" }},
			{name: "window reversed", mutate: func(p *commands.CreateCouponParams) {
				p.ValidFrom = p.ValidUntil.Add(time.Hour)
			}},
		} {
			t.Run(tc.name, func(t *testing.T) {
				p := params
				tc.mutate(&p)
				_, err := env.coupons.Create(ctx, p)
				assert.ErrorIs(t, err, errs.ErrInvalidCouponInput)
			})
		}
	})
}

// recordingTx wraps fakeTx and logs each coupon repository call so tests can
// pin the order Finalize touches the store in.
type recordingTx struct {
	inner *fakeTx
	calls []string
}

func (t *recordingTx) Coupons() shared.CouponRepository             { return &recordingCouponRepo{tx: t} }
func (t *recordingTx) Intents() shared.IntentRepository             { return t.inner.Intents() }
func (t *recordingTx) Subscriptions() shared.SubscriptionRepository { return t.inner.Subscriptions() }
func (t *recordingTx) Reads() shared.CommandReads                   { return t.inner.Reads() }

type recordingCouponRepo struct {
	tx *recordingTx
}

func (r *recordingCouponRepo) Insert(ctx context.Context, c *domcoupon.Coupon) (uuid.UUID, error) {
	r.tx.calls = append(r.tx.calls, "Insert")
	return r.tx.inner.Coupons().Insert(ctx, c)
}

func (r *recordingCouponRepo) ConsumeSlot(ctx context.Context, code string) error {
	r.tx.calls = append(r.tx.calls, "ConsumeSlot")
	return r.tx.inner.Coupons().ConsumeSlot(ctx, code)
}

func (r *recordingCouponRepo) InsertRedemption(ctx context.Context, red shared.Redemption) error {
	r.tx.calls = append(r.tx.calls, "InsertRedemption")
	return r.tx.inner.Coupons().InsertRedemption(ctx, red)
}

func (r *recordingCouponRepo) CountRedemptions(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	r.tx.calls = append(r.tx.calls, "CountRedemptions")
	return r.tx.inner.Coupons().CountRedemptions(ctx, code, userID)
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("consumes the slot before counting user redemptions", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon(func(b *builder.CouponBuilder) { b.MaxUsesPerUser = 1 })

		tx := &recordingTx{inner: &fakeTx{store: env.store}}
		err := env.coupons.Finalize(ctx, tx, commands.FinalizeParams{
			Code:              code,
			UserID:            userID,
			PlanID:            "ngo-pro",
			AmountBeforeCents: 2999,
			AmountAfterCents:  1499,
		})
		require.NoError(t, err)

		// The conditional increment takes the coupon row lock. Under
		// ReadCommitted a count taken before that lock could miss a
		// concurrent same-user redemption that commits first, so the
		// count must come after.
		assert.Equal(t, []string{"ConsumeSlot", "CountRedemptions", "InsertRedemption"}, tx.calls)
	})

	t.Run("user cap failure surfaces after the slot is taken", func(t *testing.T) {
		env := newTestEnv()
		code := env.seedCoupon(func(b *builder.CouponBuilder) { b.MaxUsesPerUser = 1 })
		env.store.putRedemption(shared.Redemption{CouponCode: code, UserID: userID, PlanID: "ngo-pro"})

		tx := &recordingTx{inner: &fakeTx{store: env.store}}
		err := env.coupons.Finalize(ctx, tx, commands.FinalizeParams{
			Code:              code,
			UserID:            userID,
			PlanID:            "ngo-pro",
			AmountBeforeCents: 2999,
			AmountAfterCents:  1499,
		})
		assert.ErrorIs(t, err, errs.ErrUserLimitReached)
		// The transaction rollback releases the slot; Finalize itself only
		// reports the failure.
		assert.Equal(t, []string{"ConsumeSlot", "CountRedemptions"}, tx.calls)
	})
}
