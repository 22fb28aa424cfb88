package components

import (
	"impactmatch-checkout/internal/handler"
	"impactmatch-checkout/internal/handler/api"
	"impactmatch-checkout/internal/handler/middleware"
	"impactmatch-checkout/internal/pkg/config"
	"impactmatch-checkout/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(s *jwt.Service) middleware.TokenValidator { return s },
		func(cfg config.Config) *middleware.Logger { return middleware.NewLogger(cfg.Log) },
		middleware.NewAuthMiddleware,
		api.NewCouponHandler,
		api.NewPaymentHandler,
		api.NewSubscriptionHandler,
		api.NewPlanHandler,
	),
	fx.Invoke(handler.NewRouter),
)
