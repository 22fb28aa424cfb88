package queries

import (
	"context"
	"time"

	"impactmatch-checkout/internal/domain/subscription"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// SubscriptionView is what dashboards see: the effective tier after expiry
// is applied at read time.
type SubscriptionView struct {
	UserID     uuid.UUID
	PlanID     string
	Status     string
	ExpiryDate *time.Time
}

type SubscriptionReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*shared.SubscriptionSnapshot, error)
}

type SubscriptionQueries interface {
	GetStatus(ctx context.Context, userID uuid.UUID) (*SubscriptionView, error)
}

type subscriptionQueriesImpl struct {
	store SubscriptionReadStore
	clock clock.Clock
}

func NewSubscriptionQueries(store SubscriptionReadStore, clk clock.Clock) SubscriptionQueries {
	return &subscriptionQueriesImpl{store: store, clock: clk}
}

func (q *subscriptionQueriesImpl) GetStatus(ctx context.Context, userID uuid.UUID) (*SubscriptionView, error) {
	snap, err := q.store.FindByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Accounts without a purchase have no row; they read as free.
			return &SubscriptionView{
				UserID: userID,
				Status: string(subscription.StatusFree),
			}, nil
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sub := subscription.Subscription{
		UserID:     snap.UserID,
		PlanID:     snap.PlanID,
		Status:     subscription.Status(snap.Status),
		ExpiryDate: snap.ExpiryDate,
	}

	view := &SubscriptionView{
		UserID: snap.UserID,
		PlanID: snap.PlanID,
		Status: string(sub.EffectiveStatus(q.clock.Now())),
	}
	if sub.ActiveAt(q.clock.Now()) {
		expiry := snap.ExpiryDate
		view.ExpiryDate = &expiry
	}
	return view, nil
}
