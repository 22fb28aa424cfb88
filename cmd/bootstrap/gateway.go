package bootstrap

import (
	"impactmatch-checkout/internal/infra/gateway"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		gateway.NewStripeGateway,
	),
)
