package components

import (
	"stayhub/internal/domain/reservation"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/staycode"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewReservationFactory,
)

func NewReservationFactory(cl clock.Clock) *reservation.Factory {
	return reservation.NewFactory(cl, staycode.New)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewPaymentQueries,
		queries.NewCalendarQueries,
	),
)
