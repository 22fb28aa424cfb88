package api

import (
	"net/http"

	reqdto "impactmatch-checkout/internal/handler/dto/request"
	resdto "impactmatch-checkout/internal/handler/dto/response"
	"impactmatch-checkout/internal/handler/httperr"
	"impactmatch-checkout/internal/handler/middleware"
	"impactmatch-checkout/internal/pkg/errs"
	"impactmatch-checkout/internal/usecase/commands"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	cmds commands.CouponCommands
}

func NewCouponHandler(cmds commands.CouponCommands) *CouponHandler {
	return &CouponHandler{cmds: cmds}
}

// @Summary Validate coupon
// @Description Check a coupon against a plan and quote the discounted price
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Validate coupon request"
// @Success 200 {object} resdto.ValidateCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Validate(c.Request.Context(), req.Code, req.PlanID, userID)
	if err != nil {
		abortCouponError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromValidationResult(result))
}

// @Summary Create coupon
// @Description Create a coupon definition (admin only)
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Create coupon request"
// @Success 201 {object} resdto.CreateCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCouponCodeExists):
			httperr.AbortWithError(c, http.StatusConflict, err, "Coupon code already exists", nil)
		case errors.Is(err, errs.ErrInvalidCouponInput):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid coupon definition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Create coupon failed", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateCouponResponse{ID: id, Code: req.Code})
}

func abortCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
	case errors.Is(err, errs.ErrPlanNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Plan not found", nil)
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
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Coupon validation failed", nil)
	}
}
