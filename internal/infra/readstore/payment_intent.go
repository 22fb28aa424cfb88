package readstore

import (
	"context"
	"errors"

	"impactmatch-checkout/internal/domain/payment"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IntentReadStore struct {
	db db.DBTX
}

func NewIntentReadStore(dbtx db.DBTX) *IntentReadStore {
	return &IntentReadStore{db: dbtx}
}

const intentColumns = `intent_id, user_id, plan_id, amount_cents, currency,
		       coupon_code, client_secret, status, created_at`

func (r *IntentReadStore) FindByID(ctx context.Context, intentID string) (*shared.IntentSnapshot, error) {
	q := `SELECT ` + intentColumns + ` FROM payment_intents WHERE intent_id = $1`

	snap, err := r.scanIntent(r.db.QueryRow(ctx, q, intentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("payment intent not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment intent", err)
	}
	return snap, nil
}

func (r *IntentReadStore) LiveIntentForCheckout(ctx context.Context, userID uuid.UUID, planID string) (*shared.IntentSnapshot, error) {
	q := `SELECT ` + intentColumns + `
		FROM payment_intents
		WHERE user_id = $1 AND plan_id = $2 AND status = 'created'
		ORDER BY created_at DESC
		LIMIT 1`

	snap, err := r.scanIntent(r.db.QueryRow(ctx, q, userID, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no live intent for checkout", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find live intent", err)
	}
	return snap, nil
}

func (r *IntentReadStore) scanIntent(row pgx.Row) (*shared.IntentSnapshot, error) {
	var (
		snap   shared.IntentSnapshot
		status string
	)
	err := row.Scan(
		&snap.IntentID, &snap.UserID, &snap.PlanID, &snap.AmountCents, &snap.Currency,
		&snap.CouponCode, &snap.ClientSecret, &status, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Status = payment.IntentStatus(status)
	return &snap, nil
}
