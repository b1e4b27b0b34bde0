package components

import (
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/paygate"
	"stayhub/internal/infra/readstore"
	"stayhub/internal/infra/uow"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
		NewCheckoutGateway,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCheckoutGateway(cfg config.Config) paygate.CheckoutGateway {
	return paygate.NewHostedCheckoutGateway(cfg.Checkout)
}
