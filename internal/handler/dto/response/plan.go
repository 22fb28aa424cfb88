package response

import "impactmatch-checkout/internal/domain/plan"

type PlanResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"priceCents"`
	Currency     string `json:"currency"`
	PeriodDays   int    `json:"periodDays"`
	RequiredRole string `json:"requiredRole,omitempty"`
}

type ListPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

func FromPlans(plans []plan.Plan) *ListPlansResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{
			ID:           p.ID,
			Name:         p.Name,
			PriceCents:   p.PriceCents,
			Currency:     p.Currency,
			PeriodDays:   p.PeriodDays,
			RequiredRole: p.RequiredRole,
		})
	}
	return &ListPlansResponse{Plans: out}
}
