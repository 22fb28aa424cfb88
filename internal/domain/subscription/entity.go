package subscription

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusFree Status = "free"
	StatusPro  Status = "pro"
)

// Subscription is the per-account paid tier. Rows are created lazily on
// first purchase and never deleted; a lapsed Pro reads as Free without a
// write (the renewal job, out of scope here, handles durable downgrades).
type Subscription struct {
	UserID     uuid.UUID
	PlanID     string
	Status     Status
	ExpiryDate time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectiveStatus is the status after applying expiry at instant t.
func (s *Subscription) EffectiveStatus(t time.Time) Status {
	if s.Status == StatusPro && t.After(s.ExpiryDate) {
		return StatusFree
	}
	return s.Status
}

func (s *Subscription) ActiveAt(t time.Time) bool {
	return s.EffectiveStatus(t) == StatusPro
}
