package api

import (
	"net/http"

	resdto "impactmatch-checkout/internal/handler/dto/response"
	"impactmatch-checkout/internal/handler/httperr"
	"impactmatch-checkout/internal/handler/middleware"
	"impactmatch-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	q queries.SubscriptionQueries
}

func NewSubscriptionHandler(q queries.SubscriptionQueries) *SubscriptionHandler {
	return &SubscriptionHandler{q: q}
}

// @Summary My subscription
// @Description Get the caller's current subscription status
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /subscriptions/me [get]
func (h *SubscriptionHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	view, err := h.q.GetStatus(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load subscription", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSubscriptionView(view))
}
