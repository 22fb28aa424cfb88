package components

import (
	"impactmatch-checkout/internal/infra/db"
	"impactmatch-checkout/internal/infra/readstore"
	"impactmatch-checkout/internal/infra/uow"
	"impactmatch-checkout/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule wires the pool-backed read stores and the unit of work.
// Command-side repositories are created per transaction by the unit of work
// and never cross the container boundary.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewSubscriptionReadStore,
			fx.As(new(queries.SubscriptionReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
