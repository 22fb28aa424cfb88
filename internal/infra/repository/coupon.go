package repository

import (
	"context"
	"errors"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}

// CouponRepository owns the coupons table and the redemption ledger.
type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) Insert(ctx context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	const q = `
		INSERT INTO coupons (
			id, code, discount_type, discount_value,
			max_uses, used_count, max_uses_per_user,
			applicable_plans, min_amount_cents,
			valid_from, valid_until, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, q,
		c.ID(), c.Code().String(), string(c.Discount().Type()), c.Discount().Value(),
		c.MaxUses(), c.UsedCount(), c.MaxUsesPerUser(),
		c.ApplicablePlans(), c.MinAmountCents(),
		c.ValidFrom(), c.ValidUntil(), c.IsActive(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("coupon code already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert coupon", err)
	}
	return id, nil
}

// ConsumeSlot is the atomic conditional increment guarding global
// exhaustion. Two confirmations racing for the last slot cannot both pass:
// the UPDATE re-evaluates the guard under row lock, so the loser matches
// zero rows and gets a conflict-kind error.
func (r *CouponRepository) ConsumeSlot(ctx context.Context, code string) error {
	const q = `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = now()
		WHERE code = $1
		  AND is_active
		  AND (max_uses = 0 OR used_count < max_uses)`

	tag, err := r.db.Exec(ctx, q, code)
	if err != nil {
		return infra.WrapRepoErr("failed to consume coupon slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no redemption slot available", nil, infra.KindConflict)
	}
	return nil
}

func (r *CouponRepository) InsertRedemption(ctx context.Context, red shared.Redemption) error {
	const q = `
		INSERT INTO redemptions (
			coupon_code, user_id, plan_id, payment_intent_id,
			amount_before_cents, amount_after_cents
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, q,
		red.CouponCode, red.UserID, red.PlanID, red.PaymentIntentID,
		red.AmountBeforeCents, red.AmountAfterCents,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("redemption already recorded for intent", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert redemption", err)
	}
	return nil
}

func (r *CouponRepository) CountRedemptions(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM redemptions WHERE coupon_code = $1 AND user_id = $2`

	var count int
	if err := r.db.QueryRow(ctx, q, code, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count redemptions", err)
	}
	return count, nil
}
