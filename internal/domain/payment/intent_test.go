//go:build unit

package payment_test

import (
	"testing"

	"impactmatch-checkout/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentStatusTransitions(t *testing.T) {
	all := []payment.IntentStatus{
		payment.StatusCreated,
		payment.StatusSuperseded,
		payment.StatusConfirmed,
		payment.StatusFailed,
	}

	t.Run("created may move to any terminal state", func(t *testing.T) {
		assert.True(t, payment.StatusCreated.CanTransitionTo(payment.StatusSuperseded))
		assert.True(t, payment.StatusCreated.CanTransitionTo(payment.StatusConfirmed))
		assert.True(t, payment.StatusCreated.CanTransitionTo(payment.StatusFailed))
		assert.False(t, payment.StatusCreated.CanTransitionTo(payment.StatusCreated))
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		for _, from := range all[1:] {
			for _, to := range all {
				assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal predicate", func(t *testing.T) {
		assert.False(t, payment.StatusCreated.Terminal())
		assert.True(t, payment.StatusSuperseded.Terminal())
		assert.True(t, payment.StatusConfirmed.Terminal())
		assert.True(t, payment.StatusFailed.Terminal())
	})
}

func TestIntentRecord(t *testing.T) {
	userID := uuid.New()

	t.Run("new record starts created", func(t *testing.T) {
		rec, err := payment.NewIntentRecord("pi_123", userID, "ngo-pro", 2999, "usd", nil, "pi_123_secret")
		require.NoError(t, err)
		assert.Equal(t, payment.StatusCreated, rec.Status)
	})

	t.Run("zero or negative amount rejected", func(t *testing.T) {
		_, err := payment.NewIntentRecord("pi_123", userID, "ngo-pro", 0, "usd", nil, "s")
		assert.Error(t, err)
		_, err = payment.NewIntentRecord("pi_123", userID, "ngo-pro", -1, "usd", nil, "s")
		assert.Error(t, err)
	})

	t.Run("empty intent id rejected", func(t *testing.T) {
		_, err := payment.NewIntentRecord("", userID, "ngo-pro", 2999, "usd", nil, "s")
		assert.Error(t, err)
	})

	t.Run("same inputs detection", func(t *testing.T) {
		code := "LAUNCH50"
		other := "WELCOME10"
		rec, err := payment.NewIntentRecord("pi_123", userID, "ngo-pro", 1499, "usd", &code, "s")
		require.NoError(t, err)

		assert.True(t, rec.SameInputs(&code, 1499))
		assert.False(t, rec.SameInputs(&code, 2999), "amount changed")
		assert.False(t, rec.SameInputs(nil, 1499), "coupon dropped")
		assert.False(t, rec.SameInputs(&other, 1499), "coupon changed")

		bare, err := payment.NewIntentRecord("pi_456", userID, "ngo-pro", 2999, "usd", nil, "s")
		require.NoError(t, err)
		assert.True(t, bare.SameInputs(nil, 2999))
		assert.False(t, bare.SameInputs(&code, 2999), "coupon added")
	})
}
