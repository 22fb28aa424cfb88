package components

import (
	"impactmatch-checkout/internal/domain/plan"
	"impactmatch-checkout/internal/pkg/clock"
	"impactmatch-checkout/internal/usecase/commands"
	"impactmatch-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	plan.NewCatalog,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCouponCommands,
		commands.NewCheckoutCommands,
		commands.NewConfirmationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSubscriptionQueries,
	),
)
