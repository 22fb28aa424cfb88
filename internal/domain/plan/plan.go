package plan

import (
	"errors"
	"sort"

	"impactmatch-checkout/internal/pkg/config"
)

var ErrPlanNotFound = errors.New("plan not found")

// Plan is one entry of the subscription price catalog. RequiredRole, when
// non-empty, restricts purchase to accounts carrying that marketplace role.
type Plan struct {
	ID           string
	Name         string
	PriceCents   int64
	Currency     string
	PeriodDays   int
	RequiredRole string
}

// Catalog is the in-process Plan/Price configuration provider. The catalog
// is built once from config and read concurrently without locking.
type Catalog struct {
	plans map[string]Plan
}

func NewCatalog(cfg config.BillingConfig) *Catalog {
	plans := make(map[string]Plan, len(cfg.PlanPricesCents))
	for id, price := range cfg.PlanPricesCents {
		plans[id] = Plan{
			ID:           id,
			Name:         cfg.PlanNames[id],
			PriceCents:   price,
			Currency:     cfg.Currency,
			PeriodDays:   cfg.PeriodDays,
			RequiredRole: cfg.PlanRoles[id],
		}
	}
	return &Catalog{plans: plans}
}

func (c *Catalog) Get(planID string) (Plan, error) {
	p, ok := c.plans[planID]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return p, nil
}

// List returns the catalog sorted by ascending price for pricing pages.
func (c *Catalog) List() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	return out
}

// EligibleFor reports whether an account role may purchase the plan.
func (p Plan) EligibleFor(role string) bool {
	return p.RequiredRole == "" || p.RequiredRole == role || role == "admin"
}
