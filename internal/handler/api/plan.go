package api

import (
	"net/http"

	"impactmatch-checkout/internal/domain/plan"
	resdto "impactmatch-checkout/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	catalog *plan.Catalog
}

func NewPlanHandler(catalog *plan.Catalog) *PlanHandler {
	return &PlanHandler{catalog: catalog}
}

// @Summary List plans
// @Description List the subscription plan catalog sorted by price
// @Tags plans
// @Produce json
// @Success 200 {object} resdto.ListPlansResponse
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromPlans(h.catalog.List()))
}
