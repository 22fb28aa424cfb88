package api

import (
	"net/http"

	reqdto "impactmatch-checkout/internal/handler/dto/request"
	resdto "impactmatch-checkout/internal/handler/dto/response"
	"impactmatch-checkout/internal/handler/httperr"
	"impactmatch-checkout/internal/handler/middleware"
	"impactmatch-checkout/internal/pkg/config"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/commands"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	checkout       commands.CheckoutCommands
	confirmation   commands.ConfirmationCommands
	publishableKey string
}

func NewPaymentHandler(checkout commands.CheckoutCommands, confirmation commands.ConfirmationCommands, cfg config.StripeConfig) *PaymentHandler {
	return &PaymentHandler{
		checkout:       checkout,
		confirmation:   confirmation,
		publishableKey: cfg.PublishableKey,
	}
}

// @Summary Create payment intent
// @Description Create or reuse a gateway payment intent for a plan, with an optional coupon.
// @Description A coupon that zeroes out the price activates the subscription directly and skips the gateway.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateIntentRequest true "Create intent request"
// @Success 200 {object} resdto.CreateIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payments/create-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	var req reqdto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.checkout.CreateOrReplaceIntent(c.Request.Context(), userID, role, req.PlanID, req.GetCouponCode())
	if err != nil {
		abortCheckoutError(c, err)
		return
	}
	if result.FreeActivation {
		// The price will be zero after the coupon; the subscription is
		// activated without the gateway and the client just redirects.
		free, err := h.confirmation.ActivateFree(c.Request.Context(), req.PlanID, *result.CouponCode, userID, role)
		if err != nil {
			abortConfirmError(c, err)
			return
		}
		c.JSON(http.StatusOK, resdto.FreeCheckoutResponse{Free: true, RedirectURL: free.DashboardPath})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result, h.publishableKey))
}

// @Summary Confirm payment
// @Description Confirm a charged payment intent and activate the subscription. Safe to retry.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConfirmPaymentRequest true "Confirm payment request"
// @Success 200 {object} resdto.ConfirmPaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/confirm [post]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.confirmation.Confirm(c.Request.Context(), req.PaymentIntentID, req.PlanID, userID)
	if err != nil {
		abortConfirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmResult(result))
}

// @Summary Activate free checkout
// @Description Activate a subscription with a coupon that covers the full plan price
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ActivateFreeRequest true "Activate free request"
// @Success 200 {object} resdto.ConfirmPaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payments/activate-free [post]
func (h *PaymentHandler) ActivateFree(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	var req reqdto.ActivateFreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.confirmation.ActivateFree(c.Request.Context(), req.PlanID, req.CouponCode, userID, role)
	if err != nil {
		abortConfirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConfirmResult(result))
}

func abortCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrPlanNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Plan not found", nil)
	case errors.Is(err, errs.ErrRoleNotEligible):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Role not eligible for plan", nil)
	case errors.Is(err, errs.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, errs.ErrCouponExhausted),
		errors.Is(err, errs.ErrUserLimitReached):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon limit reached", nil)
	case errors.Is(err, errs.ErrCouponInactive),
		errors.Is(err, errs.ErrCouponNotYetValid),
		errors.Is(err, errs.ErrCouponExpired),
		errors.Is(err, errs.ErrBelowMinimumAmount),
		errors.Is(err, errs.ErrPlanNotEligible):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon not applicable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
	}
}

func abortConfirmError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrIntentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Payment intent not found", nil)
	case errors.Is(err, errs.ErrInvalidIntent):
		httperr.AbortWithError(c, http.StatusConflict, err, "Payment intent already processed", nil)
	case errors.Is(err, errs.ErrGatewayVerificationFailed):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Charge not verified", nil)
	case errors.Is(err, errs.ErrNotFreeCheckout):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Coupon does not cover full amount", nil)
	case errors.Is(err, errs.ErrStoreConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflicting confirmation in flight", nil)
	default:
		abortCheckoutError(c, err)
	}
}
