package repository

import (
	"context"
	"time"

	"impactmatch-checkout/internal/domain/payment"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"
)

// IntentRepository owns payment_intents. Every status change is a guarded
// UPDATE from 'created' so that terminal records stay immutable and a lost
// race shows up as zero affected rows instead of a silent overwrite.
type IntentRepository struct {
	db db.DBTX
}

func NewIntentRepository(dbtx db.DBTX) *IntentRepository {
	return &IntentRepository{db: dbtx}
}

func (r *IntentRepository) Create(ctx context.Context, rec *payment.IntentRecord) error {
	const q = `
		INSERT INTO payment_intents (
			intent_id, user_id, plan_id, amount_cents, currency,
			coupon_code, client_secret, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, q,
		rec.IntentID, rec.UserID, rec.PlanID, rec.AmountCents, rec.Currency,
		rec.CouponCode, rec.ClientSecret, string(rec.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("payment intent already recorded", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert payment intent", err)
	}
	return nil
}

func (r *IntentRepository) MarkSuperseded(ctx context.Context, intentID string) (bool, error) {
	return r.transition(ctx, intentID, payment.StatusSuperseded)
}

func (r *IntentRepository) MarkConfirmed(ctx context.Context, intentID string) (bool, error) {
	return r.transition(ctx, intentID, payment.StatusConfirmed)
}

func (r *IntentRepository) MarkFailed(ctx context.Context, intentID string) (bool, error) {
	return r.transition(ctx, intentID, payment.StatusFailed)
}

func (r *IntentRepository) transition(ctx context.Context, intentID string, next payment.IntentStatus) (bool, error) {
	const q = `
		UPDATE payment_intents
		SET status = $2, updated_at = now()
		WHERE intent_id = $1 AND status = 'created'`

	tag, err := r.db.Exec(ctx, q, intentID, string(next))
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition payment intent", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IntentRepository) ExpireStaleCreated(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `
		UPDATE payment_intents
		SET status = 'failed', updated_at = now()
		WHERE status = 'created' AND created_at < $1`

	tag, err := r.db.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale intents", err)
	}
	return tag.RowsAffected(), nil
}
