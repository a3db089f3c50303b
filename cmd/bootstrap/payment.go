package bootstrap

import (
	"slotgate/internal/handler/api"
	"slotgate/internal/infra/payment"
	"slotgate/internal/pkg/config"
	"slotgate/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *payment.StripeGateway {
				return payment.NewStripeGateway(cfg.Stripe)
			},
			fx.As(new(commands.CheckoutProvider)),
			fx.As(new(api.EventVerifier)),
		),
	),
)
