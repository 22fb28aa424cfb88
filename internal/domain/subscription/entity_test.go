//go:build unit

package subscription_test

import (
	"testing"
	"time"

	"impactmatch-checkout/internal/domain/subscription"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()
	sub := &subscription.Subscription{
		UserID:     uuid.New(),
		PlanID:     "ngo-pro",
		Status:     subscription.StatusPro,
		ExpiryDate: now,
	}

	assert.Equal(t, subscription.StatusPro, sub.EffectiveStatus(now), "expiry instant itself is still active")
	assert.Equal(t, subscription.StatusPro, sub.EffectiveStatus(now.Add(-time.Second)))
	assert.Equal(t, subscription.StatusFree, sub.EffectiveStatus(now.Add(time.Second)))

	assert.True(t, sub.ActiveAt(now))
	assert.False(t, sub.ActiveAt(now.Add(time.Minute)))

	free := &subscription.Subscription{Status: subscription.StatusFree}
	assert.Equal(t, subscription.StatusFree, free.EffectiveStatus(now))
}
