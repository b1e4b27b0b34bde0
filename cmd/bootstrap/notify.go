package bootstrap

import (
	"context"
	"log/slog"

	"stayhub/internal/infra/notify"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewPublisher,
		NewDispatcher,
	),
	fx.Invoke(runDispatcher),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*notify.Publisher, error) {
	publisher, err := notify.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})

	return publisher, nil
}

func NewDispatcher(pool *pgxpool.Pool, publisher *notify.Publisher, cl clock.Clock, cfg config.Config) *notify.Dispatcher {
	return notify.NewDispatcher(pool, publisher, cl, cfg.AMQP)
}

func runDispatcher(lc fx.Lifecycle, dispatcher *notify.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start()
			slog.Info("notification dispatcher started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}
