package repository

import (
	"context"
	"time"

	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"

	"github.com/google/uuid"
)

type SubscriptionRepository struct {
	db db.DBTX
}

func NewSubscriptionRepository(dbtx db.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: dbtx}
}

// Activate upserts the account to Pro. Re-running with the same parameters
// is a no-op apart from updated_at, which keeps Confirm retries safe.
func (r *SubscriptionRepository) Activate(ctx context.Context, userID uuid.UUID, planID string, expiry time.Time) error {
	const q = `
		INSERT INTO subscriptions (user_id, plan_id, status, expiry_date)
		VALUES ($1, $2, 'pro', $3)
		ON CONFLICT (user_id) DO UPDATE
		SET plan_id = EXCLUDED.plan_id,
		    status = 'pro',
		    expiry_date = EXCLUDED.expiry_date,
		    updated_at = now()`

	if _, err := r.db.Exec(ctx, q, userID, planID, expiry); err != nil {
		return infra.WrapRepoErr("failed to activate subscription", err)
	}
	return nil
}
