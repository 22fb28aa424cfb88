//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"impactmatch-checkout/internal/domain/coupon"
	"impactmatch-checkout/internal/domain/payment"
	"impactmatch-checkout/internal/infra"
	"impactmatch-checkout/internal/usecase/commands"
	"impactmatch-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres-backed unit of work.
// The store mutex serializes transactions the way row locks do, and a
// failed transaction restores the pre-transaction state, so the commands
// under test see the same atomicity the real implementation provides.
type fakeStore struct {
	mu          sync.Mutex
	coupons     map[string]*shared.CouponSnapshot
	redemptions []shared.Redemption
	intents     map[string]*shared.IntentSnapshot
	intentOrder []string
	subs        map[uuid.UUID]*shared.SubscriptionSnapshot
	now         time.Time
}

func newFakeStore(now time.Time) *fakeStore {
	return &fakeStore{
		coupons: make(map[string]*shared.CouponSnapshot),
		intents: make(map[string]*shared.IntentSnapshot),
		subs:    make(map[uuid.UUID]*shared.SubscriptionSnapshot),
		now:     now,
	}
}

func (s *fakeStore) putCoupon(snap *shared.CouponSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *snap
	s.coupons[coupon.Normalize(cp.Code)] = &cp
}

func (s *fakeStore) putRedemption(red shared.Redemption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redemptions = append(s.redemptions, red)
}

func (s *fakeStore) exhaustCoupon(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.coupons[coupon.Normalize(code)]; ok {
		if cp.MaxUses == 0 {
			cp.MaxUses = cp.UsedCount + 1
		}
		cp.UsedCount = cp.MaxUses
	}
}

func (s *fakeStore) couponUsedCount(code string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.coupons[coupon.Normalize(code)]; ok {
		return cp.UsedCount
	}
	return 0
}

func (s *fakeStore) redemptionTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redemptions)
}

func (s *fakeStore) intentStatus(intentID string) payment.IntentStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.intents[intentID]; ok {
		return snap.Status
	}
	return ""
}

func (s *fakeStore) subscriptionOf(userID uuid.UUID) *shared.SubscriptionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.subs[userID]; ok {
		cp := *snap
		return &cp
	}
	return nil
}

type storeState struct {
	coupons     map[string]*shared.CouponSnapshot
	redemptions []shared.Redemption
	intents     map[string]*shared.IntentSnapshot
	intentOrder []string
	subs        map[uuid.UUID]*shared.SubscriptionSnapshot
}

func (s *fakeStore) snapshot() storeState {
	st := storeState{
		coupons:     make(map[string]*shared.CouponSnapshot, len(s.coupons)),
		redemptions: append([]shared.Redemption(nil), s.redemptions...),
		intents:     make(map[string]*shared.IntentSnapshot, len(s.intents)),
		intentOrder: append([]string(nil), s.intentOrder...),
		subs:        make(map[uuid.UUID]*shared.SubscriptionSnapshot, len(s.subs)),
	}
	for k, v := range s.coupons {
		cp := *v
		st.coupons[k] = &cp
	}
	for k, v := range s.intents {
		cp := *v
		st.intents[k] = &cp
	}
	for k, v := range s.subs {
		cp := *v
		st.subs[k] = &cp
	}
	return st
}

func (s *fakeStore) restore(st storeState) {
	s.coupons = st.coupons
	s.redemptions = st.redemptions
	s.intents = st.intents
	s.intentOrder = st.intentOrder
	s.subs = st.subs
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	backup := u.store.snapshot()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(backup)
		return err
	}
	return nil
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &lockedReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Coupons() shared.CouponRepository             { return &fakeCouponRepo{store: t.store} }
func (t *fakeTx) Intents() shared.IntentRepository             { return &fakeIntentRepo{store: t.store} }
func (t *fakeTx) Subscriptions() shared.SubscriptionRepository { return &fakeSubRepo{store: t.store} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &bareReads{store: t.store} }

// bareReads assumes the store mutex is already held by the transaction.
type bareReads struct {
	store *fakeStore
}

func (r *bareReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	snap, ok := r.store.coupons[coupon.Normalize(code)]
	if !ok {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *bareReads) RedemptionCount(_ context.Context, code string, userID uuid.UUID) (int, error) {
	count := 0
	for _, red := range r.store.redemptions {
		if red.CouponCode == coupon.Normalize(code) && red.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *bareReads) IntentByID(_ context.Context, intentID string) (*shared.IntentSnapshot, error) {
	snap, ok := r.store.intents[intentID]
	if !ok {
		return nil, infra.WrapRepoErr("payment intent not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *bareReads) LiveIntentForCheckout(_ context.Context, userID uuid.UUID, planID string) (*shared.IntentSnapshot, error) {
	for i := len(r.store.intentOrder) - 1; i >= 0; i-- {
		snap := r.store.intents[r.store.intentOrder[i]]
		if snap.UserID == userID && snap.PlanID == planID && snap.Status == payment.StatusCreated {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, infra.WrapRepoErr("no live intent", nil, infra.KindNotFound)
}

func (r *bareReads) SubscriptionByUser(_ context.Context, userID uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	snap, ok := r.store.subs[userID]
	if !ok {
		return nil, infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

// lockedReads is the out-of-transaction view; each call takes the mutex.
type lockedReads struct {
	store *fakeStore
}

func (r *lockedReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&bareReads{store: r.store}).CouponByCode(ctx, code)
}

func (r *lockedReads) RedemptionCount(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&bareReads{store: r.store}).RedemptionCount(ctx, code, userID)
}

func (r *lockedReads) IntentByID(ctx context.Context, intentID string) (*shared.IntentSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&bareReads{store: r.store}).IntentByID(ctx, intentID)
}

func (r *lockedReads) LiveIntentForCheckout(ctx context.Context, userID uuid.UUID, planID string) (*shared.IntentSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&bareReads{store: r.store}).LiveIntentForCheckout(ctx, userID, planID)
}

func (r *lockedReads) SubscriptionByUser(ctx context.Context, userID uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return (&bareReads{store: r.store}).SubscriptionByUser(ctx, userID)
}

type fakeCouponRepo struct {
	store *fakeStore
}

func (r *fakeCouponRepo) Insert(_ context.Context, c *coupon.Coupon) (uuid.UUID, error) {
	code := c.Code().String()
	if _, exists := r.store.coupons[code]; exists {
		return uuid.Nil, infra.WrapRepoErr("coupon code already exists", nil, infra.KindDuplicateKey)
	}
	min := c.MinAmountCents()
	r.store.coupons[code] = &shared.CouponSnapshot{
		ID:              c.ID(),
		Code:            code,
		DiscountType:    c.Discount().Type(),
		DiscountValue:   c.Discount().Value(),
		MaxUses:         c.MaxUses(),
		UsedCount:       c.UsedCount(),
		MaxUsesPerUser:  c.MaxUsesPerUser(),
		ApplicablePlans: c.ApplicablePlans(),
		MinAmountCents:  min,
		ValidFrom:       c.ValidFrom(),
		ValidUntil:      c.ValidUntil(),
		IsActive:        c.IsActive(),
	}
	return c.ID(), nil
}

// ConsumeSlot mirrors the SQL conditional increment: the guard re-evaluates
// against current state and a miss surfaces as a conflict kind.
func (r *fakeCouponRepo) ConsumeSlot(_ context.Context, code string) error {
	cp, ok := r.store.coupons[coupon.Normalize(code)]
	if !ok || !cp.IsActive || (cp.MaxUses != 0 && cp.UsedCount >= cp.MaxUses) {
		return infra.WrapRepoErr("no redemption slot available", nil, infra.KindConflict)
	}
	cp.UsedCount++
	return nil
}

func (r *fakeCouponRepo) InsertRedemption(_ context.Context, red shared.Redemption) error {
	if red.PaymentIntentID != nil {
		for _, prior := range r.store.redemptions {
			if prior.PaymentIntentID != nil && *prior.PaymentIntentID == *red.PaymentIntentID {
				return infra.WrapRepoErr("redemption already recorded for intent", nil, infra.KindDuplicateKey)
			}
		}
	}
	r.store.redemptions = append(r.store.redemptions, red)
	return nil
}

func (r *fakeCouponRepo) CountRedemptions(ctx context.Context, code string, userID uuid.UUID) (int, error) {
	return (&bareReads{store: r.store}).RedemptionCount(ctx, code, userID)
}

type fakeIntentRepo struct {
	store *fakeStore
}

func (r *fakeIntentRepo) Create(_ context.Context, rec *payment.IntentRecord) error {
	if _, exists := r.store.intents[rec.IntentID]; exists {
		return infra.WrapRepoErr("payment intent already recorded", nil, infra.KindDuplicateKey)
	}
	r.store.intents[rec.IntentID] = &shared.IntentSnapshot{
		IntentID:     rec.IntentID,
		UserID:       rec.UserID,
		PlanID:       rec.PlanID,
		AmountCents:  rec.AmountCents,
		Currency:     rec.Currency,
		CouponCode:   rec.CouponCode,
		ClientSecret: rec.ClientSecret,
		Status:       rec.Status,
		CreatedAt:    r.store.now,
	}
	r.store.intentOrder = append(r.store.intentOrder, rec.IntentID)
	return nil
}

func (r *fakeIntentRepo) transition(intentID string, to payment.IntentStatus) (bool, error) {
	snap, ok := r.store.intents[intentID]
	if !ok || snap.Status != payment.StatusCreated {
		return false, nil
	}
	snap.Status = to
	return true, nil
}

func (r *fakeIntentRepo) MarkSuperseded(_ context.Context, intentID string) (bool, error) {
	return r.transition(intentID, payment.StatusSuperseded)
}

func (r *fakeIntentRepo) MarkConfirmed(_ context.Context, intentID string) (bool, error) {
	return r.transition(intentID, payment.StatusConfirmed)
}

func (r *fakeIntentRepo) MarkFailed(_ context.Context, intentID string) (bool, error) {
	return r.transition(intentID, payment.StatusFailed)
}

func (r *fakeIntentRepo) ExpireStaleCreated(_ context.Context, cutoff time.Time) (int64, error) {
	var expired int64
	for _, snap := range r.store.intents {
		if snap.Status == payment.StatusCreated && snap.CreatedAt.Before(cutoff) {
			snap.Status = payment.StatusFailed
			expired++
		}
	}
	return expired, nil
}

type fakeSubRepo struct {
	store *fakeStore
}

func (r *fakeSubRepo) Activate(_ context.Context, userID uuid.UUID, planID string, expiry time.Time) error {
	r.store.subs[userID] = &shared.SubscriptionSnapshot{
		UserID:     userID,
		PlanID:     planID,
		Status:     "pro",
		ExpiryDate: expiry,
		UpdatedAt:  r.store.now,
	}
	return nil
}

type fakeGateway struct {
	mu            sync.Mutex
	seq           int
	verifyResults map[string]bool
	createErr     error
	createCalls   int
	verifyCalls   int
	cancelled     []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{verifyResults: make(map[string]bool)}
}

func (g *fakeGateway) CreateIntent(_ context.Context, _ int64, _ string, _ map[string]string) (*commands.GatewayIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.seq++
	id := fmt.Sprintf("pi_test_%03d", g.seq)
	return &commands.GatewayIntent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (g *fakeGateway) VerifyCharge(_ context.Context, intentID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls++
	if ok, found := g.verifyResults[intentID]; found {
		return ok, nil
	}
	return true, nil
}

func (g *fakeGateway) CancelIntent(_ context.Context, intentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled = append(g.cancelled, intentID)
	return nil
}

func (g *fakeGateway) cancelledIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.cancelled...)
}
