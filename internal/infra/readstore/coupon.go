package readstore

import (
	"context"
	"errors"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	const q = `
		SELECT id, code, discount_type, discount_value,
		       max_uses, used_count, max_uses_per_user,
		       applicable_plans, min_amount_cents,
		       valid_from, valid_until, is_active
		FROM coupons
		WHERE code = $1`

	var (
		snap         shared.CouponSnapshot
		discountType string
	)
	err := r.db.QueryRow(ctx, q, coupon.Normalize(code)).Scan(
		&snap.ID, &snap.Code, &discountType, &snap.DiscountValue,
		&snap.MaxUses, &snap.UsedCount, &snap.MaxUsesPerUser,
		&snap.ApplicablePlans, &snap.MinAmountCents,
		&snap.ValidFrom, &snap.ValidUntil, &snap.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	snap.DiscountType = coupon.DiscountType(discountType)

	return &snap, nil
}

func (r *CouponReadStore) RedemptionCount(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM redemptions WHERE coupon_code = $1 AND user_id = $2`

	var count int
	if err := r.db.QueryRow(ctx, q, coupon.Normalize(code), userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count redemptions", err)
	}
	return count, nil
}
