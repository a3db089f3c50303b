package bootstrap

import (
	"context"

	"slotgate/internal/infra/notify"
	"slotgate/internal/pkg/config"
	"slotgate/internal/usecase/commands"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			NewPublisher,
			fx.As(new(commands.NotificationDispatcher)),
		),
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*notify.Publisher, error) {
	pub, err := notify.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}
