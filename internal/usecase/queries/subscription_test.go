//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/queries"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubStore struct {
	snap *shared.SubscriptionSnapshot
	err  error
}

func (s *stubSubStore) FindByUser(_ context.Context, _ uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("no row reads as free", func(t *testing.T) {
		store := &stubSubStore{err: infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)}
		q := queries.NewSubscriptionQueries(store, clk)

		view, err := q.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "free", view.Status)
		assert.Empty(t, view.PlanID)
		assert.Nil(t, view.ExpiryDate)
	})

	t.Run("active pro", func(t *testing.T) {
		expiry := now.AddDate(0, 0, 10)
		store := &stubSubStore{snap: &shared.SubscriptionSnapshot{
			UserID:     userID,
			PlanID:     "ngo-pro",
			Status:     "pro",
			ExpiryDate: expiry,
		}}
		q := queries.NewSubscriptionQueries(store, clk)

		view, err := q.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "pro", view.Status)
		assert.Equal(t, "ngo-pro", view.PlanID)
		require.NotNil(t, view.ExpiryDate)
		assert.Equal(t, expiry, *view.ExpiryDate)
	})

	t.Run("lapsed pro reads as free without a write", func(t *testing.T) {
		store := &stubSubStore{snap: &shared.SubscriptionSnapshot{
			UserID:     userID,
			PlanID:     "ngo-pro",
			Status:     "pro",
			ExpiryDate: now.Add(-time.Second),
		}}
		q := queries.NewSubscriptionQueries(store, clk)

		view, err := q.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "free", view.Status)
		assert.Nil(t, view.ExpiryDate)
	})

	t.Run("store failures propagate", func(t *testing.T) {
		store := &stubSubStore{err: infra.WrapRepoErr("boom", nil)}
		q := queries.NewSubscriptionQueries(store, clk)

		_, err := q.GetStatus(ctx, userID)
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}
