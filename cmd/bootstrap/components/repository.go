package components

import (
	repo_impl "slotgate/internal/infra/repository"
	"slotgate/internal/usecase/commands"
	"slotgate/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			repo_impl.NewListingRepository,
			fx.As(new(commands.ListingRepository)),
			fx.As(new(queries.ListingReadStore)),
		),
		fx.Annotate(
			repo_impl.NewScheduleRepository,
			fx.As(new(commands.ScheduleRepository)),
			fx.As(new(queries.ScheduleReadStore)),
		),
		fx.Annotate(
			repo_impl.NewWebhookErrorRepository,
			fx.As(new(commands.WebhookErrorRepository)),
		),
	),
)
