package readstore

import (
	"context"
	"errors"

	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/infra/db"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubscriptionReadStore struct {
	db db.DBTX
}

func NewSubscriptionReadStore(dbtx db.DBTX) *SubscriptionReadStore {
	return &SubscriptionReadStore{db: dbtx}
}

func (r *SubscriptionReadStore) FindByUser(ctx context.Context, userID uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	const q = `
		SELECT user_id, plan_id, status, expiry_date, updated_at
		FROM subscriptions
		WHERE user_id = $1`

	var snap shared.SubscriptionSnapshot
	err := r.db.QueryRow(ctx, q, userID).Scan(
		&snap.UserID, &snap.PlanID, &snap.Status, &snap.ExpiryDate, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription", err)
	}
	return &snap, nil
}
