//go:build unit

package commands_test

import (
	"time"

	"impactmatch-checkout/internal/domain/plan"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/pkg/config"
	"impactmatch-checkout/internal/usecase/commands"
	"impactmatch-checkout/tests/common/builder"
)

// testEnv wires the command implementations against the in-memory store.
type testEnv struct {
	store    *fakeStore
	gateway  *fakeGateway
	clk      *clock.MockClock
	catalog  *plan.Catalog
	coupons  commands.CouponCommands
	checkout commands.CheckoutCommands
	confirm  commands.ConfirmationCommands
}

func newTestEnv() *testEnv {
	cfg := config.NewTestConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(now)
	uow := &fakeUoW{store: store}
	gateway := newFakeGateway()
	clk := clock.NewMockClock(now)
	catalog := plan.NewCatalog(cfg.Billing)

	coupons := commands.NewCouponCommands(uow, catalog, clk)
	return &testEnv{
		store:    store,
		gateway:  gateway,
		clk:      clk,
		catalog:  catalog,
		coupons:  coupons,
		checkout: commands.NewCheckoutCommands(uow, catalog, coupons, gateway, clk, cfg.Billing),
		confirm:  commands.NewConfirmationCommands(uow, catalog, coupons, gateway, clk),
	}
}

func (e *testEnv) seedCoupon(mutate ...func(*builder.CouponBuilder)) string {
	b := builder.NewCouponBuilder()
	b.ValidFrom = e.clk.Now().Add(-time.Hour)
	b.ValidUntil = e.clk.Now().Add(30 * 24 * time.Hour)
	for _, m := range mutate {
		m(b)
	}
	e.store.putCoupon(b.BuildSnapshot())
	return b.Code
}
